package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	f := pflag.NewFlagSet("arcade", pflag.ContinueOnError)
	defineFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

func withSettingsDir(t *testing.T, yaml string) {
	t.Helper()
	dir := t.TempDir()
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, "arcade.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	prev := settingsDir
	settingsDir = func() string { return dir }
	t.Cleanup(func() { settingsDir = prev })
}

func TestSettingsDefaults(t *testing.T) {
	withSettingsDir(t, "")

	s, err := loadSettings(testFlags(t))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.FPS != 60 || s.Seed != 0 || s.DBPath != "~/.arcade/scores.db" || s.LogLevel != "info" || s.Mute {
		t.Errorf("defaults = %+v", s)
	}
}

func TestSettingsPriority(t *testing.T) {
	withSettingsDir(t, "fps: 30\ndifficulty: easy\ndb: /tmp/file.db\nlog-level: debug\n")
	t.Setenv("ARCADE_DIFFICULTY", "hard")
	t.Setenv("ARCADE_LOG_LEVEL", "warn")

	s, err := loadSettings(testFlags(t, "--log-level", "error"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}

	tests := []struct {
		name      string
		got, want any
	}{
		{"file beats default", s.FPS, 30},
		{"file only", s.DBPath, "/tmp/file.db"},
		{"env beats file", s.Difficulty, "hard"},
		{"flag beats env", s.LogLevel, "error"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSettingsBadFile(t *testing.T) {
	withSettingsDir(t, "fps: [1, 2\n")
	if _, err := loadSettings(testFlags(t)); err == nil {
		t.Error("broken arcade.yaml should fail")
	}
}

func TestSettingsRejectsZeroFPS(t *testing.T) {
	withSettingsDir(t, "")
	if _, err := loadSettings(testFlags(t, "--fps", "0")); err == nil {
		t.Error("fps 0 should fail")
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for in, want := range tests {
		if got := port(in); got != want {
			t.Errorf("port(%q) = %q, expected %q", in, got, want)
		}
	}
}
