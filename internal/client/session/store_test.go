package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/common"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	metadata.Repository
	getErr error
	setErr error
	sets   int
}

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key string, value []byte) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.Set(ctx, key, value)
}

func alice() *models.User {
	return &models.User{ID: 1, Name: "Alice", Email: "a@x.io", Role: models.RoleUser}
}

func TestReduce(t *testing.T) {
	tok := "t1"
	full := models.Session{User: alice(), Token: &tok}

	tests := []struct {
		name   string
		start  models.Session
		action Action
		want   models.Session
	}{
		{
			name:   "user and token on empty",
			start:  models.Session{},
			action: Credentials{User: alice(), Token: common.StringPtr("t1")},
			want:   full,
		},
		{
			name:   "user only keeps token",
			start:  full,
			action: Credentials{User: &models.User{ID: 2, Name: "Bob", Role: models.RoleAdmin}},
			want:   models.Session{User: &models.User{ID: 2, Name: "Bob", Role: models.RoleAdmin}, Token: &tok},
		},
		{
			name:   "empty token is ignored",
			start:  full,
			action: Credentials{Token: common.StringPtr("")},
			want:   full,
		},
		{
			name:   "token only keeps user",
			start:  models.Session{User: alice()},
			action: Credentials{Token: common.StringPtr("t1")},
			want:   full,
		},
		{
			name:   "logout clears",
			start:  full,
			action: LogoutAction{},
			want:   models.Session{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.start, tt.action)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_PersistsEveryChange(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	s := NewStore(repo, logging.Nop{})

	s.SetCredentials(ctx, Credentials{User: alice(), Token: common.StringPtr("tok")})

	blob, err := repo.Get(ctx, common.AuthBlobKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"id":1,"name":"Alice","email":"a@x.io","role":"user"},"token":"tok"}`, string(blob))

	s.Logout(ctx)

	blob, err = repo.Get(ctx, common.AuthBlobKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":null,"token":null}`, string(blob))
	assert.Equal(t, "", s.Token())
	assert.Nil(t, s.User())
}

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()

	first := NewStore(repo, logging.Nop{})
	first.SetCredentials(ctx, Credentials{User: alice(), Token: common.StringPtr("tok")})

	second := Load(ctx, repo, logging.Nop{})
	assert.Equal(t, "tok", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "Alice", second.User().Name)
	assert.True(t, second.Snapshot().Authenticated())
}

func TestLoad_EmptyOnBadState(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		repo func() metadata.Repository
	}{
		{
			name: "missing",
			repo: func() metadata.Repository { return metadata.NewMemoryRepository() },
		},
		{
			name: "malformed",
			repo: func() metadata.Repository {
				r := metadata.NewMemoryRepository()
				_ = r.Set(ctx, common.AuthBlobKey, []byte("{not json"))
				return r
			},
		},
		{
			name: "read error",
			repo: func() metadata.Repository {
				return &failingRepo{Repository: metadata.NewMemoryRepository(), getErr: errors.New("disk gone")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Load(ctx, tt.repo(), logging.Nop{})
			assert.Equal(t, models.Session{}, s.Snapshot())
		})
	}
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{Repository: metadata.NewMemoryRepository(), setErr: errors.New("read-only")}
	s := NewStore(repo, logging.Nop{})

	s.SetCredentials(ctx, Credentials{Token: common.StringPtr("tok")})

	assert.Equal(t, 1, repo.sets)
	assert.Equal(t, "tok", s.Token())
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(metadata.NewMemoryRepository(), nil)

	var seen []bool
	unsubscribe := s.Subscribe(func(st models.Session) {
		seen = append(seen, st.Authenticated())
	})

	s.SetCredentials(ctx, Credentials{Token: common.StringPtr("tok")})
	s.Logout(ctx)
	unsubscribe()
	s.SetCredentials(ctx, Credentials{Token: common.StringPtr("again")})

	assert.Equal(t, []bool{true, false}, seen)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(metadata.NewMemoryRepository(), nil)
	s.SetCredentials(ctx, Credentials{User: alice()})

	snap := s.Snapshot()
	snap.User.Name = "Mallory"

	assert.Equal(t, "Alice", s.User().Name)
}
