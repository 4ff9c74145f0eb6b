package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(parseLevel("debug"), zerolog.DebugLevel)
	is.Equal(parseLevel("error"), zerolog.ErrorLevel)
	is.Equal(parseLevel("loud"), zerolog.InfoLevel)
}

func TestNew_File(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "logs", "crm.log")

	l, err := New(Config{Env: "production", Level: "info", File: file})
	is.NoErr(err)
	l.Debug().Msg("hidden")
	l.Info().Str("action", "AddCustomer").Msg("dispatched")
	is.NoErr(l.Close())

	bs, err := os.ReadFile(file)
	is.NoErr(err)
	out := string(bs)
	is.True(strings.Contains(out, `"action":"AddCustomer"`))
	is.True(!strings.Contains(out, "hidden"))
}
