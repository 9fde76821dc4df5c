// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the JSON API route handlers.
package handlers

import (
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/assist"
	"codeberg.org/oliverandrich/cms/internal/services/auth"
	"codeberg.org/oliverandrich/cms/internal/services/cors"
	"codeberg.org/oliverandrich/cms/internal/services/media"
	"codeberg.org/oliverandrich/cms/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo     *repository.Repository
	auth     *auth.Service
	sessions *session.Manager
	cors     *cors.Resolver
	uploads  *media.Store
	assist   *assist.Client
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, authService *auth.Service, sessions *session.Manager, corsResolver *cors.Resolver, uploads *media.Store, assistClient *assist.Client) *Handlers {
	return &Handlers{
		repo:     repo,
		auth:     authService,
		sessions: sessions,
		cors:     corsResolver,
		uploads:  uploads,
		assist:   assistClient,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// setCORS stamps the response with CORS headers when the declared
// origin is on the allow-list.
func (h *Handlers) setCORS(c echo.Context) {
	headers := h.cors.Headers(c.Request().Context(), c.Request().Header.Get(echo.HeaderOrigin))
	for key, value := range headers {
		c.Response().Header().Set(key, value)
	}
}

// preflight answers an OPTIONS request with the CORS headers for the
// declared origin and no body.
func (h *Handlers) preflight(c echo.Context) error {
	h.setCORS(c)
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the numeric :id path parameter. A non-numeric ID is
// indistinguishable from a missing record for callers.
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
