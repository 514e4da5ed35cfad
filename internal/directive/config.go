// Package directive implements korgi's configuration language: a small set
// of line-oriented directives that set the RCON endpoint and map control
// surface channels to server commands.
package directive

import "github.com/leandrodaf/korgi/internal/surface"

// Defaults applied before the first configuration file is read.
const (
	DefaultAddress    = "127.0.0.1"
	DefaultPort       = 27910
	DefaultDevice     = 0
	DefaultDeviceName = surface.NanoKONTROL2
)

// KnobAction maps a continuous control onto a numeric console variable.
type KnobAction struct {
	Command string
	Min     float64
	Max     float64
}

// Configuration is a complete, validated set of directives. A committed
// Configuration is never modified; reloads work on a Clone.
type Configuration struct {
	Address    string
	Port       int
	Password   string
	Device     int
	DeviceName string
	Profile    string

	Buttons map[int]string
	Knobs   map[int]KnobAction
}

// Defaults returns the configuration a first parse starts from.
func Defaults() *Configuration {
	return &Configuration{
		Address:    DefaultAddress,
		Port:       DefaultPort,
		Device:     DefaultDevice,
		DeviceName: DefaultDeviceName,
		Buttons:    make(map[int]string),
		Knobs:      make(map[int]KnobAction),
	}
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() *Configuration {
	next := *c
	next.Buttons = make(map[int]string, len(c.Buttons))
	for ch, cmd := range c.Buttons {
		next.Buttons[ch] = cmd
	}
	next.Knobs = make(map[int]KnobAction, len(c.Knobs))
	for ch, k := range c.Knobs {
		next.Knobs[ch] = k
	}
	return &next
}

// SameEndpoint reports whether c and o send to the same RCON address.
func (c *Configuration) SameEndpoint(o *Configuration) bool {
	return c.Address == o.Address && c.Port == o.Port
}

// SameDevice reports whether c and o select the same MIDI input.
func (c *Configuration) SameDevice(o *Configuration) bool {
	return c.Device == o.Device && c.DeviceName == o.DeviceName
}

func (c *Configuration) mapButton(ch int, command string) {
	delete(c.Knobs, ch)
	c.Buttons[ch] = command
}

func (c *Configuration) mapKnob(ch int, k KnobAction) {
	delete(c.Buttons, ch)
	c.Knobs[ch] = k
}
