package contracts

import "fmt"

// DeviceInfo describes a MIDI input as the platform reports it.
type DeviceInfo struct {
	Name         string // Port name; this is what device_name matches against.
	Manufacturer string // Empty when the platform does not report one.
	EntityName   string // Entity the port belongs to (CoreMIDI); the port name elsewhere.
}

func (d DeviceInfo) String() string {
	if d.Manufacturer == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Manufacturer)
}
