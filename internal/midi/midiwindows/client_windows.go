//go:build windows
// +build windows

// Package midiwindows reads control surfaces through the winmm MIDI input API.
package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/korgi/sdk/contracts"
	"golang.org/x/sys/windows"
)

type hMIDIIn windows.Handle

const (
	callbackFunction = 0x00030000
	midiIOStatus     = 0x00000020
)

// Messages delivered to the input callback.
const (
	mimOpen      = 0x3C1
	mimClose     = 0x3C2
	mimData      = 0x3C3
	mimError     = 0x3C5
	mimLongError = 0x3C6
	mimMoreData  = 0x3CC
)

var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrNoDeviceSelected  = errors.New("no MIDI device selected")
)

type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// The winmm callback is created once per process; windows.NewCallback
// slots are never released.
var (
	callbackOnce sync.Once
	callback     uintptr
)

// Client receives control surface events from one winmm input device.
type Client struct {
	logger contracts.Logger
	filter *contracts.MIDIEventFilter

	// events holds a chan contracts.MIDI; a nil channel drops everything.
	events atomic.Value

	mu     sync.Mutex
	handle hMIDIIn
	open   bool
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	c := &Client{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
	}
	c.events.Store((chan contracts.MIDI)(nil))
	return c, nil
}

func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	n := uint32(r0)
	if n == 0 {
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, n)
	for i := uint32(0); i < n; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			c.logger.Warn("Failed to query MIDI device", c.logger.Field().Int("device", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens input device deviceID, closing any device opened
// before.
func (c *Client) SelectDevice(deviceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deviceID < 0 {
		return fmt.Errorf("%w: index %d", ErrInvalidMIDIDevice, deviceID)
	}
	if c.open {
		if err := c.close(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	callbackOnce.Do(func() { callback = windows.NewCallback(midiInCallback) })
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&c.handle)),
		uintptr(deviceID),
		callback,
		uintptr(unsafe.Pointer(c)),
		uintptr(callbackFunction|midiIOStatus),
	)
	if r1 != 0 {
		return fmt.Errorf("%w: %d: %v", ErrInvalidMIDIDevice, deviceID, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(c.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(c.handle))
		c.handle = 0
		return fmt.Errorf("failed to start MIDI input %d: %v", deviceID, err)
	}

	c.open = true
	c.logger.Info("MIDI device connected", c.logger.Field().Int("device", deviceID))
	return nil
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

func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	c := (*Client)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case mimData:
		status := byte(dwParam1 & 0xFF)
		data1 := byte((dwParam1 >> 8) & 0xFF)
		data2 := byte((dwParam1 >> 16) & 0xFF)
		if !c.filter.Allows(status) {
			return 0
		}

		events, _ := c.events.Load().(chan contracts.MIDI)
		if events == nil {
			return 0
		}
		select {
		case events <- contracts.NewMIDI(uint64(time.Now().UTC().UnixNano()), status, data1, data2):
		default:
			c.logger.Warn("Event buffer full; dropping MIDI event")
		}
	case mimOpen, mimClose, mimMoreData:
	case mimError, mimLongError:
		c.logger.Warn("Malformed MIDI input", c.logger.Field().Int("message", int(wMsg)))
	}
	return 0
}

// Stop closes the device. Calling it more than once is harmless.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events.Store((chan contracts.MIDI)(nil))
	if !c.open {
		return nil
	}
	if err := c.close(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	c.logger.Info("MIDI capture stopped")
	return nil
}

func (c *Client) close() error {
	if r1, _, err := procMidiInStop.Call(uintptr(c.handle)); r1 != 0 {
		return err
	}
	if r1, _, err := procMidiInClose.Call(uintptr(c.handle)); r1 != 0 {
		return err
	}
	c.open = false
	c.handle = 0
	return nil
}
