// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session issues and verifies the signed admin session cookie.
//
// A session is a self-contained, HMAC-signed claim set held by the
// client. There is no server-side session state: validity is entirely
// determined by the signature and the embedded timestamp, and logout
// only removes the cookie from the client.
package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/cms/internal/config"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// Payload is the claim set embedded in the session cookie.
type Payload struct {
	Email  string
	UserID int64
}

// Manager encodes and decodes session cookies.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager derives the signing key from the configured secret. The
// caller must have validated the config; an empty secret never reaches
// this point.
func NewManager(cfg config.SessionConfig) *Manager {
	// securecookie wants a fixed-size key; derive one from the secret.
	hashKey := sha256.Sum256([]byte(cfg.Secret))

	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     cfg.Secure,
	}
}

// Create signs the payload and writes it as an http-only cookie scoped
// to the whole origin.
func (m *Manager) Create(c echo.Context, payload Payload) error {
	encoded, err := m.codec.Encode(m.cookieName, payload)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		Expires:  time.Now().Add(time.Duration(m.maxAge) * time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get returns the verified claim set, or nil when the cookie is absent,
// malformed, expired, or carries an invalid signature. It never
// returns an error: all failure modes collapse to "no session".
func (m *Manager) Get(c echo.Context) *Payload {
	return m.FromRequest(c.Request())
}

// FromRequest is Get for a bare *http.Request.
func (m *Manager) FromRequest(r *http.Request) *Payload {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	var payload Payload
	if err := m.codec.Decode(m.cookieName, cookie.Value, &payload); err != nil {
		return nil
	}
	if payload.UserID == 0 || payload.Email == "" {
		return nil
	}
	return &payload
}

// Destroy removes the session cookie. Calling it without an active
// session is a no-op.
func (m *Manager) Destroy(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName returns the configured cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}
