package contracts

import "testing"

func TestNewMIDI(t *testing.T) {
	m := NewMIDI(7, 0xB3, 16, 100)
	want := MIDI{Timestamp: 7, Command: byte(ControlChange), Channel: 3, Control: 16, Value: 100}
	if m != want {
		t.Errorf("NewMIDI = %+v, want %+v", m, want)
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		status, value byte
		want          bool
	}{
		{0x80, 64, true},
		{0x8F, 0, true},
		{0x90, 0, true},
		{0x90, 1, false},
		{0xB0, 0, false},
		{0xB0, 127, false},
	}
	for _, tt := range tests {
		if got := NewMIDI(0, tt.status, 1, tt.value).IsRelease(); got != tt.want {
			t.Errorf("status 0x%X value %d: IsRelease = %v", tt.status, tt.value, got)
		}
	}
}

func TestMIDIEventFilterAllows(t *testing.T) {
	var none *MIDIEventFilter
	if !none.Allows(0xF8) {
		t.Error("nil filter rejected an event")
	}

	f := &MIDIEventFilter{Commands: []MIDICommand{ControlChange, NoteOn}}
	for status, want := range map[byte]bool{0xB0: true, 0xBF: true, 0x95: true, 0x80: false, 0xE0: false, 0xF8: false} {
		if got := f.Allows(status); got != want {
			t.Errorf("Allows(0x%X) = %v, want %v", status, got, want)
		}
	}
}

func TestDeviceInfoString(t *testing.T) {
	if s := (DeviceInfo{Name: "LPD8"}).String(); s != "LPD8" {
		t.Errorf("String = %q", s)
	}
	if s := (DeviceInfo{Name: "nanoKONTROL2", Manufacturer: "KORG INC."}).String(); s != "nanoKONTROL2 (KORG INC.)" {
		t.Errorf("String = %q", s)
	}
}
