package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// settings are the global options after flags, ARCADE_* environment
// variables and ~/.arcade/arcade.yaml have been merged, in that priority.
type settings struct {
	FPS        int
	Seed       int64
	DBPath     string
	ConfigPath string
	Difficulty string
	Mute       bool
	LogLevel   string
}

// settingsDir is where arcade.yaml is looked up. Tests point it elsewhere.
var settingsDir = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade")
}

func loadSettings(flags *pflag.FlagSet) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix("ARCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return settings{}, fmt.Errorf("settings: %w", err)
	}

	if dir := settingsDir(); dir != "" {
		v.SetConfigName("arcade")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return settings{}, fmt.Errorf("settings: %w", err)
			}
		}
	}

	s := settings{
		FPS:        v.GetInt("fps"),
		Seed:       v.GetInt64("seed"),
		DBPath:     v.GetString("db"),
		ConfigPath: v.GetString("config"),
		Difficulty: v.GetString("difficulty"),
		Mute:       v.GetBool("mute"),
		LogLevel:   v.GetString("log-level"),
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("settings: fps must be positive, got %d", s.FPS)
	}
	return s, nil
}
