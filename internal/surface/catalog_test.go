package surface

import (
	"errors"
	"testing"
)

func TestBuiltinNanoKONTROL2(t *testing.T) {
	sel := NewSelector(Builtin(), "")
	if !sel.Select(NanoKONTROL2) {
		t.Fatal("nanoKONTROL2 profile missing")
	}

	tests := []struct {
		alias string
		want  Control
	}{
		{"play", Control{Button, 41}},
		{"rewind", Control{Button, 43}},
		{"S0", Control{Button, 32}},
		{"M7", Control{Button, 55}},
		{"R3", Control{Button, 67}},
		{"sl5", Control{Slider, 5}},
		{"kn0", Control{RotaryKnob, 16}},
		{"kn7", Control{RotaryKnob, 23}},
	}
	for _, tt := range tests {
		got, ok := sel.Resolve(tt.alias)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %v, %v; want %v", tt.alias, got, ok, tt.want)
		}
	}

	if _, ok := sel.Resolve("nope"); ok {
		t.Error("Resolve(nope) succeeded")
	}

	p, _ := Builtin().Profile(NanoKONTROL2)
	if p.Len() != 51 {
		t.Errorf("nanoKONTROL2 has %d controls, want 51", p.Len())
	}
}

func TestSelectorUnknownProfileKeepsSelection(t *testing.T) {
	sel := NewSelector(Builtin(), NanoKONTROL2)
	if sel.Select("bogus") {
		t.Fatal("Select(bogus) = true")
	}
	if sel.Active() != NanoKONTROL2 {
		t.Fatalf("active profile = %q", sel.Active())
	}
	if _, ok := sel.Resolve("play"); !ok {
		t.Error("previous profile no longer resolves")
	}
}

func TestSelectorWithoutProfile(t *testing.T) {
	sel := NewSelector(Builtin(), "")
	if _, ok := sel.Resolve("play"); ok {
		t.Error("Resolve succeeded without an active profile")
	}
	if sel.Active() != "" {
		t.Errorf("active = %q", sel.Active())
	}
}

func TestCatalogWith(t *testing.T) {
	base := Builtin()
	extra, err := NewProfile("pads", map[string]Control{"pad1": button(36)})
	if err != nil {
		t.Fatal(err)
	}

	next, err := base.With(extra)
	if err != nil {
		t.Fatal(err)
	}
	if got := next.Names(); len(got) != 2 || got[0] != NanoKONTROL2 || got[1] != "pads" {
		t.Errorf("Names() = %v", got)
	}
	if _, ok := base.Profile("pads"); ok {
		t.Error("With modified the receiver")
	}

	if _, err := next.With(extra); !errors.Is(err, ErrDuplicateProfile) {
		t.Errorf("duplicate profile error = %v", err)
	}
}

func TestNewProfileRejectsBadChannel(t *testing.T) {
	_, err := NewProfile("x", map[string]Control{"k": knob(128)})
	if !errors.Is(err, ErrChannelRange) {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewProfile("", nil); !errors.Is(err, ErrEmptyProfileName) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"button": Button, "Slider": Slider, "knob": RotaryKnob} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("pad"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v", err)
	}
}
