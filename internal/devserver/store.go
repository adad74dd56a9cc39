package devserver

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/locator/internal/client/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrRootProtected = errors.New("root users cannot be modified")
)

type account struct {
	user models.User
	hash []byte
}

// Store keeps every record in memory. Ids start at 1 and are never reused.
type Store struct {
	mu        sync.RWMutex
	users     map[int64]*account
	homes     map[int64]models.Home
	locations map[int64]models.Location
	seq       int64
}

func NewStore() *Store {
	return &Store{
		users:     make(map[int64]*account),
		homes:     make(map[int64]models.Home),
		locations: make(map[int64]models.Location),
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func window[T any](all []T, skip, limit int) []T {
	if skip >= len(all) {
		return []T{}
	}
	all = all[skip:]
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

// CreateUser adds an account. Emails are unique, case-insensitively.
func (s *Store) CreateUser(u models.User, hash []byte) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.users {
		if strings.EqualFold(a.user.Email, u.Email) {
			return models.User{}, ErrEmailTaken
		}
	}
	u.ID = s.next()
	s.users[u.ID] = &account{user: u, hash: hash}
	return u, nil
}

// UserByEmail returns the account and its password hash.
func (s *Store) UserByEmail(email string) (models.User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.users {
		if strings.EqualFold(a.user.Email, email) {
			return a.user, a.hash, nil
		}
	}
	return models.User{}, nil, ErrNotFound
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return a.user, nil
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := sortedValues(s.users)
	out := make([]models.User, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.user)
	}
	return out
}

// UpdateUser replaces name, email and role. Root accounts are read-only.
func (s *Store) UpdateUser(id int64, in models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if a.user.Role == models.RoleRoot {
		return models.User{}, ErrRootProtected
	}
	for otherID, other := range s.users {
		if otherID != id && strings.EqualFold(other.user.Email, in.Email) {
			return models.User{}, ErrEmailTaken
		}
	}
	a.user.Name = in.Name
	a.user.Email = in.Email
	a.user.Role = in.Role
	return a.user, nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if a.user.Role == models.RoleRoot {
		return ErrRootProtected
	}
	delete(s.users, id)
	return nil
}

func (s *Store) Homes(skip, limit int) []models.Home {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return window(sortedValues(s.homes), skip, limit)
}

func (s *Store) Home(id int64) (models.Home, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.homes[id]
	if !ok {
		return models.Home{}, ErrNotFound
	}
	return h, nil
}

func (s *Store) CreateHome(in models.HomeCreate) models.Home {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := models.Home{ID: s.next(), Name: in.Name, Address: in.Address}
	s.homes[h.ID] = h
	return h
}

func (s *Store) UpdateHome(id int64, in models.HomeCreate) (models.Home, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.homes[id]; !ok {
		return models.Home{}, ErrNotFound
	}
	h := models.Home{ID: id, Name: in.Name, Address: in.Address}
	s.homes[id] = h
	return h, nil
}

func (s *Store) DeleteHome(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.homes[id]; !ok {
		return ErrNotFound
	}
	delete(s.homes, id)
	return nil
}

func (s *Store) Locations(skip, limit int) []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return window(sortedValues(s.locations), skip, limit)
}

func (s *Store) Location(id int64) (models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return models.Location{}, ErrNotFound
	}
	return l, nil
}

func (s *Store) CreateLocation(in models.LocationCreate) models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := locationFrom(s.next(), in)
	s.locations[l.ID] = l
	return l
}

func (s *Store) UpdateLocation(id int64, in models.LocationCreate) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return models.Location{}, ErrNotFound
	}
	l := locationFrom(id, in)
	s.locations[id] = l
	return l, nil
}

func (s *Store) DeleteLocation(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return ErrNotFound
	}
	delete(s.locations, id)
	return nil
}

func locationFrom(id int64, in models.LocationCreate) models.Location {
	return models.Location{
		ID:               id,
		Name:             in.Name,
		Summary:          in.Summary,
		Description:      in.Description,
		PriceEstimateMin: in.PriceEstimateMin,
		PriceEstimateMax: in.PriceEstimateMax,
		Address:          in.Address,
	}
}
