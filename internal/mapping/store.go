// Package mapping holds the committed runtime mapping table and turns
// control movements into console commands.
package mapping

import (
	"sync/atomic"

	"github.com/leandrodaf/korgi/internal/directive"
)

// Store holds the committed configuration. Commit replaces it wholesale, so
// a Snapshot is always a complete table.
type Store struct {
	current atomic.Pointer[directive.Configuration]
}

// NewStore returns a store holding cfg, which may be nil.
func NewStore(cfg *directive.Configuration) *Store {
	s := &Store{}
	if cfg != nil {
		s.current.Store(cfg)
	}
	return s
}

// Commit makes cfg the committed configuration. cfg must not be modified
// afterwards.
func (s *Store) Commit(cfg *directive.Configuration) {
	s.current.Store(cfg)
}

// Snapshot returns the committed configuration, or nil before the first
// commit.
func (s *Store) Snapshot() *directive.Configuration {
	return s.current.Load()
}
