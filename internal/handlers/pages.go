// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/validation"
	"github.com/labstack/echo/v4"
)

// PagesOptions answers CORS preflights for the pages collection.
func (h *Handlers) PagesOptions(c echo.Context) error {
	return h.preflight(c)
}

// ListPages returns all pages for authenticated callers; everyone else
// only ever sees published pages.
func (h *Handlers) ListPages(c echo.Context) error {
	h.setCORS(c)

	publishedOnly := !h.auth.IsAuthenticated(c) || c.QueryParam("published") == "true"
	pages, err := h.repo.ListPages(c.Request().Context(), publishedOnly)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, pages)
}

// GetPage returns a single page by ID.
func (h *Handlers) GetPage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	page, err := h.repo.GetPage(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, page)
}

// CreatePage creates a page.
func (h *Handlers) CreatePage(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var in validation.PageInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	page := &models.Page{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Keywords:        in.Keywords,
		Published:       in.Published != nil && *in.Published,
	}

	created, err := h.repo.CreatePage(c.Request().Context(), page)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdatePage applies a partial update to a page.
func (h *Handlers) UpdatePage(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	var in validation.PageUpdateInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	page, err := h.repo.GetPage(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	applyPageUpdate(page, &in)

	updated, err := h.repo.UpdatePage(c.Request().Context(), page)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePage removes a page.
func (h *Handlers) DeletePage(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.repo.DeletePage(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

// ReorderPages rewrites the page sort order from an ID list.
func (h *Handlers) ReorderPages(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.IDs == nil {
		return jsonError(c, http.StatusBadRequest, "ids must be an array")
	}

	if err := h.repo.ReorderPages(c.Request().Context(), req.IDs); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func applyPageUpdate(page *models.Page, in *validation.PageUpdateInput) {
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Slug != nil {
		page.Slug = *in.Slug
	}
	if in.Content != nil {
		page.Content = in.Content
	}
	if in.MetaTitle != nil {
		page.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		page.MetaDescription = in.MetaDescription
	}
	if in.Keywords != nil {
		page.Keywords = in.Keywords
	}
	if in.Published != nil {
		page.Published = *in.Published
	}
}
