package surface

import (
	"fmt"
	"sort"
)

// Catalog is a read-only registry of control surface profiles keyed by name.
type Catalog struct {
	profiles map[string]*Profile
}

// NewCatalog builds a catalog. Profile names must be unique.
func NewCatalog(profiles ...*Profile) (*Catalog, error) {
	return (&Catalog{}).With(profiles...)
}

// With returns a new catalog holding c's profiles plus the given ones.
// c is left untouched.
func (c *Catalog) With(profiles ...*Profile) (*Catalog, error) {
	next := &Catalog{profiles: make(map[string]*Profile, len(c.profiles)+len(profiles))}
	for name, p := range c.profiles {
		next.profiles[name] = p
	}
	for _, p := range profiles {
		if _, exists := next.profiles[p.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProfile, p.Name())
		}
		next.profiles[p.Name()] = p
	}
	return next, nil
}

// Profile looks up a profile by name.
func (c *Catalog) Profile(name string) (*Profile, bool) {
	p, ok := c.profiles[name]
	return p, ok
}

// Names returns the profile names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selector tracks the active profile while a configuration is parsed. Each
// parse owns its own selector, so nothing about the selection is shared
// between parses.
type Selector struct {
	catalog *Catalog
	active  *Profile
}

// NewSelector returns a selector over catalog. If initial names a profile
// in the catalog it starts out active.
func NewSelector(catalog *Catalog, initial string) *Selector {
	s := &Selector{catalog: catalog}
	if initial != "" {
		s.Select(initial)
	}
	return s
}

// Select makes the named profile active. It returns false and keeps the
// current selection when the catalog has no such profile.
func (s *Selector) Select(name string) bool {
	p, ok := s.catalog.Profile(name)
	if !ok {
		return false
	}
	s.active = p
	return true
}

// Active returns the active profile name, or "" when none is selected.
func (s *Selector) Active() string {
	if s.active == nil {
		return ""
	}
	return s.active.Name()
}

// Resolve looks alias up in the active profile.
func (s *Selector) Resolve(alias string) (Control, bool) {
	if s.active == nil {
		return Control{}, false
	}
	return s.active.Lookup(alias)
}
