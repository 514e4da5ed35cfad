package midi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leandrodaf/korgi/sdk/contracts"
)

// ErrDeviceNotFound is returned when neither the name nor the index selects
// an input.
var ErrDeviceNotFound = errors.New("MIDI device not found")

// FindDevice returns the index of the first device whose name contains
// name, ignoring case. When name is empty or matches nothing, index is used
// if it is in range. matched reports whether the name was found.
func FindDevice(devices []contracts.DeviceInfo, index int, name string) (int, bool, error) {
	if name != "" {
		needle := strings.ToLower(name)
		for i, d := range devices {
			if strings.Contains(strings.ToLower(d.Name), needle) {
				return i, true, nil
			}
		}
	}
	if index < 0 || index >= len(devices) {
		return -1, false, fmt.Errorf("%w: no input named %q and index %d out of %d", ErrDeviceNotFound, name, index, len(devices))
	}
	return index, false, nil
}

// SelectDevice lists the inputs of client and selects the one FindDevice
// picks, returning its index.
func SelectDevice(client contracts.ClientMIDI, index int, name string, logger contracts.Logger) (int, error) {
	devices, err := client.ListDevices()
	if err != nil {
		return -1, err
	}

	i, matched, err := FindDevice(devices, index, name)
	if err != nil {
		return -1, err
	}
	if name != "" && !matched {
		logger.Warn("No MIDI device matches name, using index",
			logger.Field().String("name", name),
			logger.Field().Int("device", i),
			logger.Field().String("using", devices[i].Name))
	}

	if err := client.SelectDevice(i); err != nil {
		return -1, err
	}
	return i, nil
}
