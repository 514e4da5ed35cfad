package surface

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownKind       = errors.New("unknown control kind")
	ErrChannelRange      = errors.New("channel out of range")
	ErrDuplicateProfile  = errors.New("duplicate control surface profile")
	ErrEmptyProfileName  = errors.New("control surface profile has no name")
	ErrEmptyControlAlias = errors.New("control alias is empty")
)

// Profile maps aliases to the controls of one hardware model. It is not
// modified after construction.
type Profile struct {
	name     string
	controls map[string]Control
}

// NewProfile copies controls into a new profile after checking that every
// channel is a valid MIDI data byte.
func NewProfile(name string, controls map[string]Control) (*Profile, error) {
	if name == "" {
		return nil, ErrEmptyProfileName
	}
	p := &Profile{name: name, controls: make(map[string]Control, len(controls))}
	for alias, c := range controls {
		if alias == "" {
			return nil, fmt.Errorf("profile %s: %w", name, ErrEmptyControlAlias)
		}
		if c.Channel < 0 || c.Channel > MaxChannel {
			return nil, fmt.Errorf("profile %s: control %s: %w: %d", name, alias, ErrChannelRange, c.Channel)
		}
		p.controls[alias] = c
	}
	return p, nil
}

func mustProfile(name string, controls map[string]Control) *Profile {
	p, err := NewProfile(name, controls)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the name used by the device_map directive.
func (p *Profile) Name() string {
	return p.name
}

// Lookup returns the control registered under alias.
func (p *Profile) Lookup(alias string) (Control, bool) {
	c, ok := p.controls[alias]
	return c, ok
}

// Aliases returns the profile's aliases in sorted order.
func (p *Profile) Aliases() []string {
	aliases := make([]string, 0, len(p.controls))
	for alias := range p.controls {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of controls in the profile.
func (p *Profile) Len() int {
	return len(p.controls)
}
