package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return s
}

func TestParseClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("subject and expiry", func(t *testing.T) {
		tok := signed(t, jwt.RegisteredClaims{Subject: "a@x.io", ExpiresAt: jwt.NewNumericDate(exp)})
		c, ok := ParseClaims(tok)
		require.True(t, ok)
		assert.Equal(t, "a@x.io", c.Subject)
		assert.True(t, c.ExpiresAt.Equal(exp))
		assert.False(t, c.Expired(exp.Add(-time.Minute)))
		assert.True(t, c.Expired(exp.Add(time.Minute)))
	})

	t.Run("no exp never expires", func(t *testing.T) {
		tok := signed(t, jwt.RegisteredClaims{Subject: "a"})
		c, ok := ParseClaims(tok)
		require.True(t, ok)
		assert.False(t, c.Expired(time.Now()))
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := ParseClaims("not-a-jwt")
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := ParseClaims("")
		assert.False(t, ok)
	})
}

func TestStore_Claims(t *testing.T) {
	s := NewStore(metadata.NewMemoryRepository(), nil)
	_, ok := s.Claims()
	assert.False(t, ok)

	tok := signed(t, jwt.RegisteredClaims{Subject: "7"})
	s.SetCredentials(context.Background(), Credentials{Token: common.StringPtr(tok)})

	c, ok := s.Claims()
	require.True(t, ok)
	assert.Equal(t, "7", c.Subject)
}
