// Package surface holds the catalog of known control surfaces: named
// hardware profiles that map symbolic aliases such as "play" or "kn3" to
// the physical control behind them.
package surface

import (
	"fmt"
	"strings"
)

// MaxChannel is the highest MIDI controller or note number.
const MaxChannel = 127

// Kind is the type of a physical control.
type Kind int

const (
	Button Kind = iota
	Slider
	RotaryKnob
)

func (k Kind) String() string {
	switch k {
	case Button:
		return "button"
	case Slider:
		return "slider"
	case RotaryKnob:
		return "knob"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names used in profile files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "button":
		return Button, nil
	case "slider":
		return Slider, nil
	case "knob", "rotary_knob":
		return RotaryKnob, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Control identifies one physical control on a profile.
type Control struct {
	Kind    Kind
	Channel int
}

func (c Control) String() string {
	return fmt.Sprintf("%s %d", c.Kind, c.Channel)
}

func button(ch int) Control { return Control{Kind: Button, Channel: ch} }
func slider(ch int) Control { return Control{Kind: Slider, Channel: ch} }
func knob(ch int) Control   { return Control{Kind: RotaryKnob, Channel: ch} }
