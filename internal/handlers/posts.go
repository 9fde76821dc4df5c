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

// PostsOptions answers CORS preflights for the posts collection.
func (h *Handlers) PostsOptions(c echo.Context) error {
	return h.preflight(c)
}

// ListPosts returns all posts for authenticated callers; everyone else
// only ever sees published posts.
func (h *Handlers) ListPosts(c echo.Context) error {
	h.setCORS(c)

	publishedOnly := !h.auth.IsAuthenticated(c) || c.QueryParam("published") == "true"
	posts, err := h.repo.ListPosts(c.Request().Context(), publishedOnly)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by ID.
func (h *Handlers) GetPost(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	post, err := h.repo.GetPost(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a blog post.
func (h *Handlers) CreatePost(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var in validation.PostInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	post := &models.Post{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		Author:          in.Author,
		Tags:            in.Tags,
		PublishedAt:     in.PublishedAt,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Keywords:        in.Keywords,
		Published:       in.Published != nil && *in.Published,
	}

	created, err := h.repo.CreatePost(c.Request().Context(), post)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdatePost applies a partial update to a post.
func (h *Handlers) UpdatePost(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	var in validation.PostUpdateInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	post, err := h.repo.GetPost(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	applyPostUpdate(post, &in)

	updated, err := h.repo.UpdatePost(c.Request().Context(), post)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePost removes a post.
func (h *Handlers) DeletePost(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.repo.DeletePost(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ReorderPosts rewrites the post sort order from an ID list.
func (h *Handlers) ReorderPosts(c echo.Context) error {
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

	if err := h.repo.ReorderPosts(c.Request().Context(), req.IDs); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func applyPostUpdate(post *models.Post, in *validation.PostUpdateInput) {
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Slug != nil {
		post.Slug = *in.Slug
	}
	if in.Content != nil {
		post.Content = in.Content
	}
	if in.Author != nil {
		post.Author = in.Author
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.PublishedAt != nil {
		post.PublishedAt = in.PublishedAt
	}
	if in.MetaTitle != nil {
		post.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		post.MetaDescription = in.MetaDescription
	}
	if in.Keywords != nil {
		post.Keywords = in.Keywords
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
}
