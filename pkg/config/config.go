package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "crm"

// Config groups the application settings. Values come from CRM_* environment
// variables, then an optional crm.yaml, then defaults.
type Config struct {
	App  AppConfig
	Log  LogConfig
	Data DataConfig
}

type AppConfig struct {
	Env string // development, production
}

type LogConfig struct {
	Level string
	File  string // empty -> stderr
}

type DataConfig struct {
	StateFile string // key-value slots such as the theme
	SeedFile  string // optional fixtures loaded at startup
}

// Load reads the configuration. file may be empty, in which case crm.yaml is
// looked up in the working directory and in ~/.config/crm.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		_ = v.ReadInConfig() // optional
	}

	dir, err := Dir()
	if err != nil {
		dir = "."
	}

	return &Config{
		App: AppConfig{
			Env: getString(v, "APP_ENV", "production"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
			File:  getString(v, "LOG_FILE", ""),
		},
		Data: DataConfig{
			StateFile: getString(v, "STATE_FILE", filepath.Join(dir, "state.json")),
			SeedFile:  getString(v, "DATA_FILE", ""),
		},
	}, nil
}

// Dir is where crm keeps its files, ~/.config/crm.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}
