package contracts

// MIDICommand is a channel-voice status nibble used for event filtering.
type MIDICommand byte

const (
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// ControlChange is the MIDI command sent by knobs, sliders and most
	// control surface buttons (0xB0).
	ControlChange MIDICommand = 0xB0
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether an event with the given status byte passes the
// filter. The channel nibble is ignored. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(status byte) bool {
	if f == nil {
		return true
	}
	for _, c := range f.Commands {
		if status&0xF0 == byte(c) {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	PortName        string           // Name of the virtual input port the client registers, where supported.

	logLevelSet bool
}

// LogLevelSet reports whether WithLogLevel was applied.
func (o *ClientOptions) LogLevelSet() bool {
	return o.logLevelSet
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
		opts.logLevelSet = true
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithPortName sets the name of the input port the client registers.
func WithPortName(name string) Option {
	return func(opts *ClientOptions) {
		opts.PortName = name
	}
}
