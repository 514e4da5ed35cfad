// Package midi opens the platform MIDI input used by korgi.
package midi

import (
	"github.com/leandrodaf/korgi/sdk/contracts"
)

// NewMIDIClient creates the MIDI client for the running platform.
//
// Without WithLogger a console logger at info level is used. Without
// WithCoreMIDIConfig the client registers as DefaultClientName.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options := applyDefaultOptions(opts...)
	return NewClient(&options)
}
