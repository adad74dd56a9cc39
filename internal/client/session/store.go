// Package session holds the signed-in user and bearer token, and mirrors
// them into the persisted blob store on every change.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/common"
	"github.com/dmitrijs2005/locator/internal/logging"
)

// Listener is notified with the new state after every dispatch.
type Listener func(models.Session)

// Store is the session state container. Mutations go through Dispatch (or
// the SetCredentials/Logout shortcuts); readers get copies.
type Store struct {
	mu    sync.RWMutex
	state models.Session
	repo  metadata.Repository
	log   logging.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// NewStore returns an empty store backed by repo.
func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop{}
	}
	return &Store{repo: repo, log: log, listeners: make(map[int]Listener)}
}

// Load builds a store and rehydrates it from the "auth" blob. A missing,
// unreadable or malformed blob yields an empty session.
func Load(ctx context.Context, repo metadata.Repository, log logging.Logger) *Store {
	s := NewStore(repo, log)

	blob, err := repo.Get(ctx, common.AuthBlobKey)
	if err != nil {
		s.log.Warn(ctx, "could not load auth state", "error", err)
		return s
	}
	if blob == nil {
		return s
	}

	var restored models.Session
	if err := json.Unmarshal(blob, &restored); err != nil {
		s.log.Warn(ctx, "could not parse auth state", "error", err)
		return s
	}

	s.state = restored
	return s
}

// Dispatch applies a, persists the result and notifies listeners.
// Persistence failures are logged; the in-memory state still changes.
func (s *Store) Dispatch(ctx context.Context, a Action) models.Session {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := copySession(s.state)
	s.mu.Unlock()

	s.save(ctx, snapshot)

	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(copySession(snapshot))
	}
	return snapshot
}

func (s *Store) save(ctx context.Context, state models.Session) {
	blob, err := json.Marshal(state)
	if err != nil {
		s.log.Error(ctx, "could not save auth state", "error", err)
		return
	}
	if err := s.repo.Set(ctx, common.AuthBlobKey, blob); err != nil {
		s.log.Error(ctx, "could not save auth state", "error", err)
	}
}

// SetCredentials merges user and/or token into the session.
func (s *Store) SetCredentials(ctx context.Context, c Credentials) models.Session {
	return s.Dispatch(ctx, c)
}

// Logout clears the session.
func (s *Store) Logout(ctx context.Context) models.Session {
	return s.Dispatch(ctx, LogoutAction{})
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.state)
}

// Token returns the bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == nil {
		return ""
	}
	return *s.state.Token
}

// User returns a copy of the signed-in profile, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func copySession(in models.Session) models.Session {
	var out models.Session
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	if in.Token != nil {
		t := *in.Token
		out.Token = &t
	}
	return out
}
