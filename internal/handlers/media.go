// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/media"
	"github.com/labstack/echo/v4"
)

// MediaOptions answers CORS preflights for the media collection.
func (h *Handlers) MediaOptions(c echo.Context) error {
	return h.preflight(c)
}

// ListMedia returns all uploaded media items.
func (h *Handlers) ListMedia(c echo.Context) error {
	h.setCORS(c)

	items, err := h.repo.ListMedia(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, items)
}

// UploadMedia accepts a multipart image upload and records it.
func (h *Handlers) UploadMedia(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "file is required")
	}

	var alt *string
	if v := c.FormValue("alt"); v != "" {
		alt = &v
	}

	item, err := h.uploads.Save(file, alt)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrTooLarge):
			return jsonError(c, http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, media.ErrUnsupportedType):
			return jsonError(c, http.StatusUnsupportedMediaType, "Only image uploads are allowed")
		default:
			return internalError(c)
		}
	}

	created, err := h.repo.CreateMedia(c.Request().Context(), item)
	if err != nil {
		// The file is already on disk; remove it so failed inserts do
		// not leak orphaned uploads.
		if rmErr := h.uploads.Remove(item.StoredName); rmErr != nil {
			slog.Warn("removing orphaned upload failed", "file", item.StoredName, "error", rmErr)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// DeleteMedia removes a media row and best-effort unlinks its file.
func (h *Handlers) DeleteMedia(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	item, err := h.repo.DeleteMedia(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	if err := h.uploads.Remove(item.StoredName); err != nil {
		slog.Warn("removing uploaded file failed", "file", item.StoredName, "error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
