package settings

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	s, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &Settings{
		ConfigFile:   DefaultConfigFile,
		LogLevel:     "info",
		PollInterval: time.Second,
		ProfilePaths: []string{},
		EventBuffer:  256,
	}
	if s.ProfilePaths == nil {
		s.ProfilePaths = []string{}
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestFlagsAndPositional(t *testing.T) {
	s, err := Load([]string{"--log-level=debug", "--poll-interval=250ms", "--profiles=a,b", "--list-devices", "my.conf"})
	if err != nil {
		t.Fatal(err)
	}
	if s.ConfigFile != "my.conf" || s.LogLevel != "debug" || s.PollInterval != 250*time.Millisecond || !s.ListDevices {
		t.Errorf("settings = %+v", s)
	}
	if !reflect.DeepEqual(s.ProfilePaths, []string{"a", "b"}) {
		t.Errorf("profiles = %v", s.ProfilePaths)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("KORGI_LOG_LEVEL", "warn")
	t.Setenv("KORGI_EVENT_BUFFER", "16")

	s, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "warn" || s.EventBuffer != 16 {
		t.Errorf("settings = %+v", s)
	}

	// Flags win over the environment.
	s, err = Load([]string{"--log-level=error"})
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "error" {
		t.Errorf("log level = %q", s.LogLevel)
	}
}

func TestSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "korgi.yaml")
	content := "log_level: debug\npoll_interval: 5s\nprofiles:\n  - /etc/korgi/profiles\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load([]string{"--settings", path})
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "debug" || s.PollInterval != 5*time.Second {
		t.Errorf("settings = %+v", s)
	}
	if !reflect.DeepEqual(s.ProfilePaths, []string{"/etc/korgi/profiles"}) {
		t.Errorf("profiles = %v", s.ProfilePaths)
	}
}

func TestInvalidSettings(t *testing.T) {
	for _, args := range [][]string{
		{"--poll-interval=0s"},
		{"--event-buffer=0"},
		{"a.conf", "b.conf"},
		{"--no-such-flag"},
		{"--settings", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if _, err := Load(args); err == nil {
			t.Errorf("Load(%v) succeeded", args)
		}
	}
}

func TestHelp(t *testing.T) {
	if _, err := Load([]string{"--help"}); !errors.Is(err, ErrHelp) {
		t.Errorf("err = %v", err)
	}
}
