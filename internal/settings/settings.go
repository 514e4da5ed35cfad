// Package settings loads the process settings of the korgi command from
// flags, KORGI_* environment variables and an optional settings file. The
// control mapping itself lives in the directive file, not here.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read when no directive file is given.
const DefaultConfigFile = "korgi.conf"

// ErrHelp is returned when -h or --help was requested.
var ErrHelp = pflag.ErrHelp

type Settings struct {
	ConfigFile   string        `mapstructure:"config"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	ProfilePaths []string      `mapstructure:"profiles"`
	EventBuffer  int           `mapstructure:"event_buffer"`
	ListDevices  bool          `mapstructure:"list_devices"`
}

// Load parses args (without the program name). The first positional
// argument, if any, names the directive file.
func Load(args []string) (*Settings, error) {
	v := viper.New()

	fs := pflag.NewFlagSet("korgi", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: korgi [flags] [config file]\n\n%s", fs.FlagUsages())
	}
	settingsFile := fs.String("settings", "", "YAML file with default values for these flags")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-file", "", "append logs to this file instead of stderr")
	fs.Duration("poll-interval", time.Second, "how often to check the config file for changes")
	fs.StringSlice("profiles", nil, "files or directories with extra control surface profiles")
	fs.Int("event-buffer", 256, "number of MIDI events buffered between the device and the run loop")
	fs.Bool("list-devices", false, "list MIDI input devices and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Defaults
	v.SetDefault("config", DefaultConfigFile)
	for key, flag := range map[string]string{
		"log_level":     "log-level",
		"log_file":      "log-file",
		"poll_interval": "poll-interval",
		"profiles":      "profiles",
		"event_buffer":  "event-buffer",
		"list_devices":  "list-devices",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix("KORGI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *settingsFile != "" {
		v.SetConfigFile(*settingsFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	if fs.NArg() > 1 {
		return nil, errors.New("too many arguments: expected at most one config file")
	}
	if fs.NArg() == 1 {
		v.Set("config", fs.Arg(0))
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if s.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", s.PollInterval)
	}
	if s.EventBuffer < 1 {
		return nil, fmt.Errorf("event buffer must be at least 1, got %d", s.EventBuffer)
	}
	return &s, nil
}
