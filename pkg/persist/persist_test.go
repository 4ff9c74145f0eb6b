package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestJSON_SetGet(t *testing.T) {
	is := is.New(t)

	file := filepath.Join(t.TempDir(), "nested", "state.json")
	kv := InJSON(file)

	_, found, err := kv.Get("theme")
	is.NoErr(err)
	is.True(!found) // missing file is an empty store

	is.NoErr(kv.Set("theme", "dark"))
	is.NoErr(kv.Set("lang", "en"))

	// a second handle sees what the first wrote
	again := InJSON(file)
	v, found, err := again.Get("theme")
	is.NoErr(err)
	is.True(found)
	is.Equal(v, "dark")

	is.NoErr(again.Set("theme", "light"))
	v, _, err = kv.Get("theme")
	is.NoErr(err)
	is.Equal(v, "light")
	v, _, err = kv.Get("lang")
	is.NoErr(err)
	is.Equal(v, "en")
}

func TestJSON_Corrupt(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "state.json")
	is.NoErr(os.WriteFile(file, []byte("{not json"), 0600))

	_, _, err := InJSON(file).Get("theme")
	is.True(err != nil)
	is.True(InJSON(file).Set("theme", "dark") != nil)
}

func TestMemory(t *testing.T) {
	is := is.New(t)
	var kv KV = InMemory()
	_, found, _ := kv.Get("theme")
	is.True(!found)
	is.NoErr(kv.Set("theme", "dark"))
	v, found, _ := kv.Get("theme")
	is.True(found)
	is.Equal(v, "dark")
}
