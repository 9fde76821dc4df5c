// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/cms/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "cms_session",
		MaxAge:     604800,
		Secret:     "test-secret-test-secret-test-secret!",
	}
}

func newContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionRoundTrip(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	c, rec := newContext(e)
	require.NoError(t, m.Create(c, Payload{Email: "admin@example.com", UserID: 1}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]

	assert.Equal(t, "cms_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 604800, cookie.MaxAge)

	// Replay the cookie on a new request
	c2, _ := newContext(e)
	c2.Request().AddCookie(cookie)

	payload := m.Get(c2)
	require.NotNil(t, payload)
	assert.Equal(t, "admin@example.com", payload.Email)
	assert.Equal(t, int64(1), payload.UserID)
}

func TestSessionMissingCookie(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	c, _ := newContext(e)
	assert.Nil(t, m.Get(c))
}

func TestSessionTamperedCookie(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	c, rec := newContext(e)
	require.NoError(t, m.Create(c, Payload{Email: "admin@example.com", UserID: 1}))
	cookie := rec.Result().Cookies()[0]

	// Flip a character in the encoded value
	tampered := []byte(cookie.Value)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}

	c2, _ := newContext(e)
	c2.Request().AddCookie(&http.Cookie{Name: cookie.Name, Value: string(tampered)})
	assert.Nil(t, m.Get(c2))
}

func TestSessionWrongSecret(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	c, rec := newContext(e)
	require.NoError(t, m.Create(c, Payload{Email: "admin@example.com", UserID: 1}))
	cookie := rec.Result().Cookies()[0]

	otherCfg := testConfig()
	otherCfg.Secret = "another-secret-another-secret-another!"
	other := NewManager(otherCfg)

	c2, _ := newContext(e)
	c2.Request().AddCookie(cookie)
	assert.Nil(t, other.Get(c2))
}

func TestSessionExpiry(t *testing.T) {
	e := echo.New()
	cfg := testConfig()
	cfg.MaxAge = 1
	m := NewManager(cfg)

	c, rec := newContext(e)
	require.NoError(t, m.Create(c, Payload{Email: "admin@example.com", UserID: 1}))
	cookie := rec.Result().Cookies()[0]

	c2, _ := newContext(e)
	c2.Request().AddCookie(cookie)
	require.NotNil(t, m.Get(c2))

	// The codec timestamps in whole seconds, so one second past max
	// age needs two wall seconds in the worst case.
	time.Sleep(2100 * time.Millisecond)

	c3, _ := newContext(e)
	c3.Request().AddCookie(cookie)
	assert.Nil(t, m.Get(c3))
}

func TestSessionIncompletePayload(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	// A validly signed but empty claim set must not count as a session.
	c, rec := newContext(e)
	require.NoError(t, m.Create(c, Payload{}))
	cookie := rec.Result().Cookies()[0]

	c2, _ := newContext(e)
	c2.Request().AddCookie(cookie)
	assert.Nil(t, m.Get(c2))
}

func TestSessionDestroy(t *testing.T) {
	e := echo.New()
	m := NewManager(testConfig())

	c, rec := newContext(e)
	m.Destroy(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cms_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
