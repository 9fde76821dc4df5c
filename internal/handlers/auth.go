// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/cms/internal/services/auth"
	"codeberg.org/oliverandrich/cms/internal/services/session"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies an email/password pair and issues the session cookie.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Email and password required")
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return internalError(c)
	}

	if err := h.sessions.Create(c, session.Payload{UserID: user.ID, Email: user.Email}); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Logout removes the session cookie. Idempotent: logging out without a
// session succeeds.
func (h *Handlers) Logout(c echo.Context) error {
	h.sessions.Destroy(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
