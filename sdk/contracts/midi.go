package contracts

// MIDI is a single channel-voice message received from a control surface.
// For control-change messages Control is the controller number and Value its
// position; for note messages they carry the note number and velocity.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status high nibble (e.g. ControlChange, NoteOn).
	Channel   byte   // Channel is the MIDI channel (0-15) taken from the status low nibble.
	Control   byte   // Control is the first data byte (0-127).
	Value     byte   // Value is the second data byte (0-127).
}

// NewMIDI splits a raw status byte and its two data bytes into a MIDI event.
func NewMIDI(timestamp uint64, status, data1, data2 byte) MIDI {
	return MIDI{
		Timestamp: timestamp,
		Command:   status & 0xF0,
		Channel:   status & 0x0F,
		Control:   data1,
		Value:     data2,
	}
}

// IsRelease reports whether the event ends a press: a Note Off, or a Note On
// with zero velocity.
func (m MIDI) IsRelease() bool {
	return m.Command == byte(NoteOff) || (m.Command == byte(NoteOn) && m.Value == 0)
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI input devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its index in ListDevices.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}
