// Package selection tracks which home the console is currently viewing.
// The selection lives in memory only and is not checked against the homes
// the server knows about.
package selection

import (
	"sync"

	"github.com/dmitrijs2005/locator/internal/client/models"
)

// Store holds the selected home id, or nil when none is selected.
type Store struct {
	mu     sync.RWMutex
	homeID *int64
}

// NewStore returns a store with nothing selected.
func NewStore() *Store {
	return &Store{}
}

// SetHomeID overwrites the selection. nil clears it.
func (s *Store) SetHomeID(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.homeID = nil
		return
	}
	v := *id
	s.homeID = &v
}

// ClearHomeID drops the selection.
func (s *Store) ClearHomeID() {
	s.SetHomeID(nil)
}

// HomeID returns the selected id and whether one is set.
func (s *Store) HomeID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.homeID == nil {
		return 0, false
	}
	return *s.homeID, true
}

// DefaultTo selects the first of homes when nothing is selected yet.
// It returns the resulting selection.
func (s *Store) DefaultTo(homes []models.Home) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.homeID == nil && len(homes) > 0 {
		v := homes[0].ID
		s.homeID = &v
	}
	if s.homeID == nil {
		return 0, false
	}
	return *s.homeID, true
}

// Find returns the selected home from homes, if it is among them.
func (s *Store) Find(homes []models.Home) (models.Home, bool) {
	id, ok := s.HomeID()
	if !ok {
		return models.Home{}, false
	}
	for _, h := range homes {
		if h.ID == id {
			return h, true
		}
	}
	return models.Home{}, false
}
