//go:build darwin
// +build darwin

// Package mididarwin reads control surfaces through CoreMIDI.
package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/korgi/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice    = errors.New("invalid MIDI device")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

const defaultPortName = "korgi input"

type portConnection interface {
	Disconnect()
}

// Client receives control surface events from one CoreMIDI source.
type Client struct {
	logger   contracts.Logger
	filter   *contracts.MIDIEventFilter
	portName string

	client    coremidi.Client
	inputPort coremidi.InputPort
	portConn  portConnection

	// events holds a chan contracts.MIDI; a nil channel drops everything.
	events atomic.Value

	mu       sync.Mutex
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewMIDIClient registers a CoreMIDI client named after
// options.CoreMIDIConfig.ClientName.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("error creating CoreMIDI client: %w", err)
	}

	portName := options.PortName
	if portName == "" {
		portName = defaultPortName
	}

	c := &Client{
		logger:   options.Logger,
		filter:   options.MIDIEventFilter,
		portName: portName,
		client:   client,
	}
	c.events.Store((chan contracts.MIDI)(nil))
	options.Logger.Debug("CoreMIDI client created",
		options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName))
	return c, nil
}

func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects the input port to source deviceID, replacing any
// previous connection.
func (c *Client) SelectDevice(deviceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidMIDIDevice, deviceID, len(sources))
	}

	if c.portConn != nil {
		c.portConn.Disconnect()
		c.portConn = nil
	}

	source := sources[deviceID]
	c.inputPort, err = coremidi.NewInputPort(c.client, c.portName, c.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	c.portConn, err = c.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	c.logger.Info("MIDI device connected",
		c.logger.Field().Int("device", deviceID),
		c.logger.Field().String("name", source.Name()))
	return nil
}

// handlePacket splits a CoreMIDI packet into three-byte channel messages.
// Control surfaces send one message per packet, but running several
// controls at once can coalesce them.
func (c *Client) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	c.wg.Add(1)
	defer c.wg.Done()

	events, _ := c.events.Load().(chan contracts.MIDI)
	if events == nil {
		return
	}

	data := packet.Data
	if len(data) < 3 {
		c.logger.Debug(ErrIncompleteMIDIPacket.Error(), c.logger.Field().Int("bytes", len(data)))
		return
	}

	now := uint64(time.Now().UTC().UnixNano())
	for ; len(data) >= 3; data = data[3:] {
		if !c.filter.Allows(data[0]) {
			continue
		}
		select {
		case events <- contracts.NewMIDI(now, data[0], data[1], data[2]):
		default:
			c.logger.Warn("Event buffer full; dropping MIDI event")
		}
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

// Stop disconnects the source and waits for in-flight callbacks. Calling it
// more than once is harmless.
func (c *Client) Stop() error {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.events.Store((chan contracts.MIDI)(nil))
		if c.portConn != nil {
			c.portConn.Disconnect()
			c.portConn = nil
		}
		c.wg.Wait()
		c.logger.Info("MIDI capture stopped")
	})
	return nil
}
