// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/validation"
	"github.com/labstack/echo/v4"
)

const defaultSiteName = "My CMS"

// SettingsOptions answers CORS preflights for the settings resource.
func (h *Handlers) SettingsOptions(c echo.Context) error {
	return h.preflight(c)
}

// GetSettings returns the site settings singleton. Before the first
// write a default row is synthesized so consumers always get a body.
func (h *Handlers) GetSettings(c echo.Context) error {
	h.setCORS(c)

	settings, err := h.repo.GetSettings(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, models.SiteSettings{SiteName: defaultSiteName})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial update to the settings singleton and
// invalidates the CORS origin cache so changes take effect immediately.
func (h *Handlers) UpdateSettings(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var in validation.SettingsInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	settings, err := h.repo.GetSettings(c.Request().Context())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return internalError(c)
		}
		settings = &models.SiteSettings{SiteName: defaultSiteName}
	}

	if in.SiteName != nil {
		settings.SiteName = *in.SiteName
	}
	if in.SiteDescription != nil {
		settings.SiteDescription = in.SiteDescription
	}
	if in.LogoURL != nil {
		settings.LogoURL = in.LogoURL
	}
	if in.SocialLinks != nil {
		encoded, err := encodeJSON(in.SocialLinks)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid socialLinks")
		}
		settings.SocialLinks = encoded
	}
	if in.CORSOrigins != nil {
		encoded, err := encodeJSON(in.CORSOrigins)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid corsOrigins")
		}
		settings.CORSOrigins = encoded
	}

	updated, err := h.repo.UpsertSettings(c.Request().Context(), settings)
	if err != nil {
		return internalError(c)
	}

	// Origin changes must be visible to the next preflight, not a
	// minute from now.
	h.cors.Invalidate()

	return c.JSON(http.StatusOK, updated)
}

func encodeJSON(v any) (*string, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(buf)
	return &s, nil
}
