// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides shared helpers for package tests.
package testutil

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"codeberg.org/oliverandrich/cms/internal/config"
	"codeberg.org/oliverandrich/cms/internal/database"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

var dbCounter atomic.Int64

// NewTestDB opens a fresh in-memory database with all migrations
// applied. Each call gets its own database; the shared cache keeps it
// visible across pooled connections.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := database.Open(dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewTestRepo wraps NewTestDB in a repository.
func NewTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New(NewTestDB(t))
}

// SessionConfig returns a session configuration suitable for tests.
func SessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "cms_session",
		MaxAge:     604800,
		Secret:     "test-secret-test-secret-test-secret!",
		Secure:     false,
	}
}

// NewJSONContext builds an echo context for a JSON request and returns
// it together with the response recorder.
func NewJSONContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
