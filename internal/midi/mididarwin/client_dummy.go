//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/korgi/sdk/contracts"
)

var ErrUnavailable = errors.New("CoreMIDI is only available on macOS")

// NewMIDIClient fails everywhere but macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return nil, ErrUnavailable
}
