// Command korgi forwards control surface movements to a game server as RCON
// commands.
//
//	korgi [flags] [config-file]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/korgi/internal/bridge"
	"github.com/leandrodaf/korgi/internal/directive"
	"github.com/leandrodaf/korgi/internal/logger"
	"github.com/leandrodaf/korgi/internal/rcon"
	"github.com/leandrodaf/korgi/internal/settings"
	"github.com/leandrodaf/korgi/internal/surface"
	"github.com/leandrodaf/korgi/sdk/contracts"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	s, err := settings.Load(args)
	if errors.Is(err, settings.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "korgi:", err)
		return 1
	}

	log, err := newLogger(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "korgi:", err)
		return 1
	}
	defer log.Sync()

	if s.ListDevices {
		return listDevices(log)
	}

	catalog, err := loadCatalog(s.ProfilePaths, log)
	if err != nil {
		log.Error("Failed to load control surface profiles", log.Field().Error("error", err))
		return 1
	}

	b := bridge.New(bridge.Options{
		ConfigPath:   s.ConfigFile,
		PollInterval: s.PollInterval,
		EventBuffer:  s.EventBuffer,
		Parser:       directive.NewParser(catalog, log),
		Logger:       log,
		Dial: func(host string, port int) (bridge.Sender, error) {
			c, err := rcon.Dial(host, port)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		OpenDevice: deviceOpener(log),
	})

	log.Info("Starting korgi",
		log.Field().String("config", s.ConfigFile),
		log.Field().String("poll_interval", s.PollInterval.String()))
	if err := b.Start(); err != nil {
		log.Error("Failed to start", log.Field().Error("error", err))
		return 1
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		log.Error("Stopped with error", log.Field().Error("error", err))
		return 1
	}
	log.Info("Shutting down")
	return 0
}

func newLogger(s *settings.Settings) (contracts.Logger, error) {
	level, err := contracts.ParseLogLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}

	// Log files get JSON lines; the terminal gets the console encoder.
	if s.LogFile == "" {
		log := logger.NewConsoleLogger()
		log.SetLevel(level)
		return log, nil
	}
	log := logger.NewZapLogger()
	log.SetLevel(level)
	if err := log.SetDestination(contracts.FileLog, s.LogFile); err != nil {
		return nil, err
	}
	return log, nil
}

// loadCatalog returns the built-in profiles plus those found on paths.
// Profile files that fail to load are reported and skipped.
func loadCatalog(paths []string, log contracts.Logger) (*surface.Catalog, error) {
	catalog := surface.Builtin()
	if len(paths) == 0 {
		return catalog, nil
	}

	loader, err := surface.NewLoader(paths)
	if err != nil {
		return nil, err
	}
	profiles, err := loader.LoadAll()
	if err != nil {
		log.Warn("Some control surface profiles were skipped", log.Field().Error("error", err))
	}
	for _, p := range profiles {
		log.Debug("Loaded control surface profile",
			log.Field().String("name", p.Name()),
			log.Field().Int("controls", p.Len()))
	}
	return catalog.With(profiles...)
}
