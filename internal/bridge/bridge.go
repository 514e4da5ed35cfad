// Package bridge runs korgi: it feeds MIDI events from the control surface
// through the committed mapping table and sends the resulting commands over
// RCON, reloading the configuration file when it changes.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leandrodaf/korgi/internal/directive"
	"github.com/leandrodaf/korgi/internal/mapping"
	"github.com/leandrodaf/korgi/internal/watch"
	"github.com/leandrodaf/korgi/sdk/contracts"
	"go.uber.org/multierr"
)

var (
	ErrNotStarted = errors.New("bridge not started")
	// ErrReconnect marks a reload that parsed but could not open the new
	// socket or device. Such a reload is retried on every poll interval.
	ErrReconnect = errors.New("reconnect failed")
)

// Sender delivers commands to the game server.
type Sender interface {
	Send(password, command string) error
	Close() error
}

// DialFunc opens a Sender for host:port.
type DialFunc func(host string, port int) (Sender, error)

// Device is an open MIDI input.
type Device interface {
	Stop() error
}

// OpenDeviceFunc opens the MIDI input selected by cfg and starts delivering
// its events on events.
type OpenDeviceFunc func(cfg *directive.Configuration, events chan contracts.MIDI) (Device, error)

type Options struct {
	ConfigPath   string
	PollInterval time.Duration
	EventBuffer  int
	Parser       *directive.Parser
	Dial         DialFunc
	OpenDevice   OpenDeviceFunc
	Logger       contracts.Logger
}

// Bridge owns the connections and the committed configuration. Handle,
// Reload and Run must be called from a single goroutine.
type Bridge struct {
	opts   Options
	logger contracts.Logger
	store  *mapping.Store
	events chan contracts.MIDI

	sender  Sender
	device  Device
	watcher *watch.Watcher

	lastControl int
	retry       bool
}

func New(opts Options) *Bridge {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.EventBuffer < 1 {
		opts.EventBuffer = 256
	}
	return &Bridge{
		opts:        opts,
		logger:      opts.Logger,
		store:       mapping.NewStore(nil),
		events:      make(chan contracts.MIDI, opts.EventBuffer),
		lastControl: -1,
	}
}

// Store exposes the committed mapping table.
func (b *Bridge) Store() *mapping.Store {
	return b.store
}

// Start reads the configuration, opens the RCON socket and the MIDI
// device. Any failure here is fatal for the caller.
func (b *Bridge) Start() error {
	w, err := watch.New(b.opts.ConfigPath, b.logger)
	if err != nil {
		return err
	}

	cfg, err := b.load(nil)
	if err != nil {
		w.Close()
		return err
	}

	sender, err := b.dial(cfg)
	if err != nil {
		w.Close()
		return err
	}

	device, err := b.openDevice(cfg)
	if err != nil {
		sender.Close()
		w.Close()
		return err
	}

	b.watcher = w
	b.sender = sender
	b.device = device
	b.store.Commit(cfg)
	return nil
}

// Run dispatches events and watches the configuration until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	if b.watcher == nil {
		return ErrNotStarted
	}

	ticker := time.NewTicker(b.opts.PollInterval)
	defer ticker.Stop()

	notify := b.watcher.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-b.events:
			b.Handle(ev)

		case <-notify:
			b.watcher.Sync()
			b.reload()

		case <-ticker.C:
			changed, err := b.watcher.Changed()
			if err != nil {
				b.logger.Warn("Config check failed", b.logger.Field().Error("error", err))
				continue
			}
			if changed || b.retry {
				b.reload()
			}
		}
	}
}

// Handle resolves one MIDI event and sends the resulting command, if any.
func (b *Bridge) Handle(ev contracts.MIDI) {
	cfg := b.store.Snapshot()

	value := int(ev.Value)
	if ev.IsRelease() {
		value = 0
	}
	a := mapping.Lookup(cfg, int(ev.Control), value)

	// Continuous controls send a burst of events; only the first of a run
	// on the same control is logged at info level.
	log := b.logger.Info
	if a.Control == b.lastControl {
		log = b.logger.Debug
	}
	b.lastControl = a.Control

	if a.Kind == mapping.Unmapped {
		log("Channel unmapped",
			b.logger.Field().Int("channel", a.Control),
			b.logger.Field().Int("value", a.Value))
		return
	}
	if a.Command == "" {
		return
	}

	log("Control moved",
		b.logger.Field().String("kind", a.Kind.String()),
		b.logger.Field().Int("channel", a.Control),
		b.logger.Field().String("command", a.Command))

	if err := b.sender.Send(cfg.Password, a.Command); err != nil {
		b.logger.Error("Failed to send command",
			b.logger.Field().String("command", a.Command),
			b.logger.Field().Error("error", err))
	}
}

// Reload re-reads the configuration file. When the endpoint or the device
// selection changed, new connections are opened before anything is
// committed; if that fails the previous configuration and connections stay
// in place and the error wraps ErrReconnect.
func (b *Bridge) Reload() error {
	prev := b.store.Snapshot()
	if prev == nil {
		return ErrNotStarted
	}
	b.retry = false

	cfg, err := b.load(prev)
	if err != nil {
		return err
	}

	var sender Sender
	if !cfg.SameEndpoint(prev) {
		if sender, err = b.dial(cfg); err != nil {
			b.retry = true
			return fmt.Errorf("%w: %w", ErrReconnect, err)
		}
	}

	var device Device
	if !cfg.SameDevice(prev) {
		if device, err = b.openDevice(cfg); err != nil {
			if sender != nil {
				sender.Close()
			}
			b.retry = true
			return fmt.Errorf("%w: %w", ErrReconnect, err)
		}
	}

	b.store.Commit(cfg)

	if sender != nil {
		if err := b.sender.Close(); err != nil {
			b.logger.Warn("Failed to close previous socket", b.logger.Field().Error("error", err))
		}
		b.sender = sender
	}
	if device != nil {
		if err := b.device.Stop(); err != nil {
			b.logger.Warn("Failed to stop previous MIDI device", b.logger.Field().Error("error", err))
		}
		b.device = device
	}
	return nil
}

// Close releases the device, the socket and the watcher.
func (b *Bridge) Close() error {
	var err error
	if b.device != nil {
		err = multierr.Append(err, b.device.Stop())
		b.device = nil
	}
	if b.sender != nil {
		err = multierr.Append(err, b.sender.Close())
		b.sender = nil
	}
	if b.watcher != nil {
		err = multierr.Append(err, b.watcher.Close())
		b.watcher = nil
	}
	return err
}

func (b *Bridge) reload() {
	retrying := b.retry
	if retrying {
		b.logger.Debug("Retrying reconnect", b.logger.Field().String("file", b.opts.ConfigPath))
	} else {
		b.logger.Info("Reloading config file", b.logger.Field().String("file", b.opts.ConfigPath))
	}

	err := b.Reload()
	switch {
	case err == nil && retrying:
		b.logger.Info("Reconnected, configuration applied")
	case err == nil:
	case retrying && b.retry:
		b.logger.Debug("Reconnect still failing", b.logger.Field().Error("error", err))
	default:
		b.logger.Error("Reload failed, keeping previous configuration", b.logger.Field().Error("error", err))
	}
}

func (b *Bridge) load(prev *directive.Configuration) (*directive.Configuration, error) {
	cfg, err := b.opts.Parser.ParseFile(b.opts.ConfigPath, prev)
	if err != nil {
		for _, e := range directive.Errors(err) {
			b.logger.Error("Config error", b.logger.Field().String("error", e.Error()))
		}
		return nil, err
	}
	return cfg, nil
}

func (b *Bridge) dial(cfg *directive.Configuration) (Sender, error) {
	sender, err := b.opts.Dial(cfg.Address, cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", cfg.Address, cfg.Port, err)
	}
	b.logger.Info("Connected",
		b.logger.Field().String("address", cfg.Address),
		b.logger.Field().Int("port", cfg.Port))
	return sender, nil
}

func (b *Bridge) openDevice(cfg *directive.Configuration) (Device, error) {
	device, err := b.opts.OpenDevice(cfg, b.events)
	if err != nil {
		return nil, fmt.Errorf("failed to open the midi device: %w", err)
	}
	return device, nil
}
