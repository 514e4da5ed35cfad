//go:build !linux
// +build !linux

package midilinux

import (
	"errors"

	"github.com/leandrodaf/korgi/sdk/contracts"
)

var ErrUnavailable = errors.New("ALSA MIDI input is only available on Linux")

// NewMIDIClient fails everywhere but Linux.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return nil, ErrUnavailable
}
