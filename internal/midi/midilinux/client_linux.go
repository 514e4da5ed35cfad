//go:build linux
// +build linux

// Package midilinux reads control surfaces through ALSA, via rtmidi.
package midilinux

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/leandrodaf/korgi/sdk/contracts"
)

var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
)

// Client receives control surface events from one rtmidi input port.
type Client struct {
	logger contracts.Logger
	filter *contracts.MIDIEventFilter
	drv    *rtmididrv.Driver

	// events holds a chan contracts.MIDI; a nil channel drops everything.
	events atomic.Value

	mu       sync.Mutex
	in       drivers.In
	stopFn   func()
	stopOnce sync.Once
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	c := &Client{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
		drv:    drv,
	}
	c.events.Store((chan contracts.MIDI)(nil))
	return c, nil
}

func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := c.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{Name: in.String(), EntityName: in.String()}
	}
	return devices, nil
}

// SelectDevice opens input port deviceID and starts listening on it,
// closing any port opened before.
func (c *Client) SelectDevice(deviceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ins, err := c.drv.Ins()
	if err != nil {
		return fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidMIDIDevice, deviceID, len(ins))
	}
	c.closePort()

	in := ins[deviceID]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %q: %w", in.String(), err)
	}

	stop, err := midi.ListenTo(in, c.handleMessage, midi.HandleError(func(err error) {
		c.logger.Warn("MIDI listener error",
			c.logger.Field().String("device", in.String()),
			c.logger.Field().Error("error", err))
	}))
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("listen %q: %w", in.String(), err)
	}

	c.in = in
	c.stopFn = stop
	c.logger.Info("MIDI device connected",
		c.logger.Field().Int("device", deviceID),
		c.logger.Field().String("name", in.String()))
	return nil
}

func (c *Client) handleMessage(msg midi.Message, _ int32) {
	b := msg.Bytes()
	if len(b) < 3 || !c.filter.Allows(b[0]) {
		return
	}
	events, _ := c.events.Load().(chan contracts.MIDI)
	if events == nil {
		return
	}
	select {
	case events <- contracts.NewMIDI(uint64(time.Now().UTC().UnixNano()), b[0], b[1], b[2]):
	default:
		c.logger.Warn("Event buffer full; dropping MIDI event")
	}
}

// StartCapture delivers events to eventChannel from now on.
func (c *Client) StartCapture(eventChannel chan contracts.MIDI) {
	if eventChannel == nil {
		c.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	c.events.Store(eventChannel)
	c.logger.Debug("MIDI capture started")
}

// Stop closes the port and the driver. Calling it more than once is
// harmless.
func (c *Client) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.events.Store((chan contracts.MIDI)(nil))
		c.closePort()
		err = c.drv.Close()
		c.logger.Info("MIDI capture stopped")
	})
	return err
}

func (c *Client) closePort() {
	if c.stopFn != nil {
		c.stopFn()
		c.stopFn = nil
	}
	if c.in != nil {
		_ = c.in.Close()
		c.in = nil
	}
}
