// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/session"
	"codeberg.org/oliverandrich/cms/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *repository.Repository, *session.Manager) {
	t.Helper()
	repo := testutil.NewTestRepo(t)
	sessions := session.NewManager(testutil.SessionConfig())
	return NewService(repo, sessions), repo, sessions
}

func seedUser(t *testing.T, repo *repository.Repository, email, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	_, err = repo.CreateUser(context.Background(), email, hash)
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "admin@example.com", "hunter2hunter2")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "admin@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("seeds admin once", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "hunter2hunter2"))
		count, err := repo.CountUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Second run is a no-op
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "hunter2hunter2"))
		count, err = repo.CountUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Seeded credentials must work
		_, err = svc.Login(context.Background(), "admin@example.com", "hunter2hunter2")
		assert.NoError(t, err)
	})

	t.Run("empty credentials skip seeding", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
		count, err := repo.CountUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestCreateToken(t *testing.T) {
	svc, repo, _ := newTestService(t)

	token, raw, err := svc.CreateToken(context.Background(), "ci deploy")
	require.NoError(t, err)

	assert.Equal(t, "ci deploy", token.Name)
	assert.Regexp(t, `^cms_[0-9a-f]{32}$`, raw)
	assert.Equal(t, raw[len(raw)-4:], token.TokenHint)
	assert.Equal(t, HashToken(raw), token.TokenHash)
	assert.Nil(t, token.LastUsedAt)

	// Only the hash is recoverable from the store
	stored, err := repo.GetTokenByHash(context.Background(), HashToken(raw))
	require.NoError(t, err)
	assert.Equal(t, token.ID, stored.ID)
	assert.NotContains(t, stored.TokenHash, raw)
}

func TestIsAuthenticated(t *testing.T) {
	e := echo.New()
	svc, repo, sessions := newTestService(t)
	seedUser(t, repo, "admin@example.com", "hunter2hunter2")

	_, raw, err := svc.CreateToken(context.Background(), "test")
	require.NoError(t, err)

	newCtx := func(authorization string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("no credentials", func(t *testing.T) {
		assert.False(t, svc.IsAuthenticated(newCtx("")))
	})

	t.Run("valid bearer token", func(t *testing.T) {
		c := newCtx("Bearer " + raw)
		assert.True(t, svc.IsAuthenticated(c))

		// Background touch should land eventually
		assert.Eventually(t, func() bool {
			tokens, listErr := repo.ListTokens(context.Background())
			return listErr == nil && len(tokens) == 1 && tokens[0].LastUsedAt != nil
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("unknown bearer token", func(t *testing.T) {
		c := newCtx("Bearer cms_00000000000000000000000000000000")
		assert.False(t, svc.IsAuthenticated(c))
	})

	t.Run("valid session cookie", func(t *testing.T) {
		setupRec := httptest.NewRecorder()
		setup := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), setupRec)
		require.NoError(t, sessions.Create(setup, session.Payload{Email: "admin@example.com", UserID: 1}))

		c := newCtx("")
		c.Request().AddCookie(setupRec.Result().Cookies()[0])
		assert.True(t, svc.IsAuthenticated(c))
	})
}
