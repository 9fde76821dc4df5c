// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package cors

import (
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveOrigins(t *testing.T, repo *repository.Repository, origins string) {
	t.Helper()
	_, err := repo.UpsertSettings(context.Background(), &models.SiteSettings{
		SiteName:    "Test",
		CORSOrigins: &origins,
	})
	require.NoError(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	t.Run("no settings row denies everything", func(t *testing.T) {
		r := NewResolver(testutil.NewTestRepo(t))
		assert.Empty(t, r.AllowedOrigins(context.Background()))
	})

	t.Run("reads origins from settings", func(t *testing.T) {
		repo := testutil.NewTestRepo(t)
		saveOrigins(t, repo, `["https://a.example","https://b.example"]`)

		r := NewResolver(repo)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, r.AllowedOrigins(context.Background()))
	})

	t.Run("malformed stored JSON denies everything", func(t *testing.T) {
		repo := testutil.NewTestRepo(t)
		saveOrigins(t, repo, `not json`)

		r := NewResolver(repo)
		assert.Empty(t, r.AllowedOrigins(context.Background()))
	})
}

func TestCacheAndInvalidate(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	saveOrigins(t, repo, `["https://a.example"]`)

	r := NewResolver(repo)
	assert.Equal(t, []string{"https://a.example"}, r.AllowedOrigins(context.Background()))

	// A settings write alone is not visible while the cache is fresh
	saveOrigins(t, repo, `["https://b.example"]`)
	assert.Equal(t, []string{"https://a.example"}, r.AllowedOrigins(context.Background()))

	// Invalidation forces a reload
	r.Invalidate()
	assert.Equal(t, []string{"https://b.example"}, r.AllowedOrigins(context.Background()))
}

func TestCacheExpiry(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	saveOrigins(t, repo, `["https://a.example"]`)

	r := &Resolver{repo: repo, ttl: time.Millisecond}
	assert.Equal(t, []string{"https://a.example"}, r.AllowedOrigins(context.Background()))

	saveOrigins(t, repo, `["https://b.example"]`)
	time.Sleep(5 * time.Millisecond)

	// A stale snapshot reloads without an explicit Invalidate
	assert.Equal(t, []string{"https://b.example"}, r.AllowedOrigins(context.Background()))
}

func TestHeaders(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	saveOrigins(t, repo, `["https://a.example"]`)
	r := NewResolver(repo)

	t.Run("allowed origin", func(t *testing.T) {
		headers := r.Headers(context.Background(), "https://a.example")
		assert.Equal(t, map[string]string{
			echo.HeaderAccessControlAllowOrigin:  "https://a.example",
			echo.HeaderAccessControlAllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
			echo.HeaderAccessControlAllowHeaders: "Content-Type, Authorization",
			echo.HeaderAccessControlMaxAge:       "86400",
		}, headers)
	})

	t.Run("unlisted origin", func(t *testing.T) {
		assert.Empty(t, r.Headers(context.Background(), "https://evil.example"))
	})

	t.Run("subdomain does not match", func(t *testing.T) {
		assert.Empty(t, r.Headers(context.Background(), "https://sub.a.example"))
	})

	t.Run("missing origin", func(t *testing.T) {
		assert.Empty(t, r.Headers(context.Background(), ""))
	})
}
