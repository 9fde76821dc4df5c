// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/auth"
	"github.com/labstack/echo/v4"
)

type tokenView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	TokenMasked string  `json:"tokenMasked"`
	CreatedAt   string  `json:"createdAt"`
	LastUsedAt  *string `json:"lastUsedAt"`
}

// ListTokens returns all API tokens in masked form. Raw secrets are
// never recoverable after creation.
func (h *Handlers) ListTokens(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	tokens, err := h.repo.ListTokens(c.Request().Context())
	if err != nil {
		return internalError(c)
	}

	views := make([]tokenView, 0, len(tokens))
	for _, t := range tokens {
		views = append(views, tokenView{
			ID:          t.ID,
			Name:        t.Name,
			TokenMasked: auth.MaskToken(t.TokenHint),
			CreatedAt:   t.CreatedAt,
			LastUsedAt:  t.LastUsedAt,
		})
	}
	return c.JSON(http.StatusOK, views)
}

type createTokenRequest struct {
	Name string `json:"name"`
}

type createTokenResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullToken   string  `json:"fullToken"`
	TokenMasked string  `json:"tokenMasked"`
	CreatedAt   string  `json:"createdAt"`
	LastUsedAt  *string `json:"lastUsedAt"`
}

// CreateToken mints a new API token. The response is the only place the
// full secret ever appears.
func (h *Handlers) CreateToken(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req createTokenRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return jsonError(c, http.StatusBadRequest, "name is required")
	}

	token, raw, err := h.auth.CreateToken(c.Request().Context(), name)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusCreated, createTokenResponse{
		ID:          token.ID,
		Name:        token.Name,
		FullToken:   raw,
		TokenMasked: auth.MaskToken(token.TokenHint),
		CreatedAt:   token.CreatedAt,
		LastUsedAt:  token.LastUsedAt,
	})
}

// DeleteToken revokes an API token.
func (h *Handlers) DeleteToken(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.repo.DeleteToken(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
