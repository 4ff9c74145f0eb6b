package state

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/persist"
)

type failingKV struct{ persist.KV }

func (failingKV) Set(string, string) error { return errors.New("disk full") }

func TestTheme_Toggle(t *testing.T) {
	is := is.New(t)
	kv := persist.InMemory()
	s := newStore(kv)
	is.Equal(s.Snapshot().Theme.Mode, crm.Light)

	is.NoErr(s.Dispatch(ToggleTheme{}))
	is.Equal(s.Snapshot().Theme.Mode, crm.Dark)
	saved, found, _ := kv.Get(ThemeKey)
	is.True(found)
	is.Equal(saved, "dark")

	is.NoErr(s.Dispatch(ToggleTheme{}))
	is.Equal(s.Snapshot().Theme, crm.DefaultTheme())
	saved, _, _ = kv.Get(ThemeKey)
	is.Equal(saved, "light")
}

func TestTheme_RestoredOnStart(t *testing.T) {
	is := is.New(t)
	kv := persist.InJSON(t.TempDir() + "/state.json")
	first := newStore(kv)
	is.NoErr(first.Dispatch(SetThemeMode{Mode: crm.Dark}))

	second := newStore(kv)
	is.Equal(second.Snapshot().Theme.Mode, crm.Dark)
}

func TestTheme_InvalidSavedModeIgnored(t *testing.T) {
	is := is.New(t)
	kv := persist.InMemory()
	is.NoErr(kv.Set(ThemeKey, "sepia"))
	s := newStore(kv)
	is.Equal(s.Snapshot().Theme.Mode, crm.Light)
}

func TestTheme_ColorsDoNotTouchSlot(t *testing.T) {
	is := is.New(t)
	kv := persist.InMemory()
	s := newStore(kv)
	is.NoErr(s.Dispatch(SetPrimaryColor{Color: "#ff0000"}))
	is.NoErr(s.Dispatch(SetSecondaryColor{Color: "#00f"}))
	_, found, _ := kv.Get(ThemeKey)
	is.True(!found)
	is.Equal(s.Snapshot().Theme.PrimaryColor, "#ff0000")
	is.Equal(s.Snapshot().Theme.SecondaryColor, "#00f")
}

func TestTheme_SaveFailureKeepsState(t *testing.T) {
	is := is.New(t)
	s := newStore(failingKV{persist.InMemory()})
	var seen crm.Mode
	s.Subscribe(func(st State) { seen = st.Theme.Mode })
	err := s.Dispatch(ToggleTheme{})
	is.True(err != nil)
	is.Equal(s.Snapshot().Theme.Mode, crm.Dark)
	is.Equal(seen, crm.Dark)
}
