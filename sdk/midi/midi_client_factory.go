package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/korgi/internal/midi/mididarwin"
	"github.com/leandrodaf/korgi/internal/midi/midilinux"
	"github.com/leandrodaf/korgi/internal/midi/midiwindows"
	"github.com/leandrodaf/korgi/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI
	"windows": midiwindows.NewMIDIClient, // winmm
	"linux":   midilinux.NewMIDIClient,   // ALSA through rtmidi
}

// NewClient initializes the MIDI client for the current operating system.
// It returns ErrUnsupportedOS on platforms without a client.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
