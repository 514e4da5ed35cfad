package mapping

import (
	"fmt"

	"github.com/leandrodaf/korgi/internal/directive"
)

// MaxValue is the full-scale value of a MIDI data byte.
const MaxValue = 127

// ActionKind says how a control is mapped.
type ActionKind int

const (
	Unmapped ActionKind = iota
	MappedButton
	MappedKnob
)

func (k ActionKind) String() string {
	switch k {
	case MappedButton:
		return "button"
	case MappedKnob:
		return "knob"
	default:
		return "unmapped"
	}
}

// Action is the outcome of one control movement. Command is empty when
// nothing is to be sent: an unmapped control or a button release.
type Action struct {
	Kind    ActionKind
	Control int
	Value   int
	Command string
}

// Lookup maps a control movement to its action using cfg. It has no side
// effects; a nil cfg maps nothing.
func Lookup(cfg *directive.Configuration, control, value int) Action {
	a := Action{Kind: Unmapped, Control: control, Value: value}
	if cfg == nil {
		return a
	}

	if cmd, ok := cfg.Buttons[control]; ok {
		a.Kind = MappedButton
		if value > 0 {
			a.Command = cmd
		}
		return a
	}

	if k, ok := cfg.Knobs[control]; ok {
		a.Kind = MappedKnob
		a.Command = fmt.Sprintf("%s %.3f", k.Command, Interpolate(k.Min, k.Max, value))
	}
	return a
}

// Resolve returns the command for a control movement, if any.
func Resolve(cfg *directive.Configuration, control, value int) (string, bool) {
	a := Lookup(cfg, control, value)
	return a.Command, a.Command != ""
}

// Interpolate maps a raw 0-127 value linearly onto [lo, hi].
func Interpolate(lo, hi float64, value int) float64 {
	t := float64(value) / MaxValue
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return lo*(1-t) + hi*t
}

// Resolver resolves control movements against a store's committed table.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Lookup is Lookup on the current snapshot.
func (r *Resolver) Lookup(control, value int) Action {
	return Lookup(r.store.Snapshot(), control, value)
}

// Resolve is Resolve on the current snapshot.
func (r *Resolver) Resolve(control, value int) (string, bool) {
	return Resolve(r.store.Snapshot(), control, value)
}
