//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/korgi/sdk/contracts"
)

var ErrUnavailable = errors.New("winmm MIDI input is only available on Windows")

// NewMIDIClient fails everywhere but Windows.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return nil, ErrUnavailable
}
