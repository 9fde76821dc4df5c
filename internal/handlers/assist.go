// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/cms/internal/services/assist"
	"github.com/labstack/echo/v4"
)

type generateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

type seoRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

type chatRequest struct {
	Message string               `json:"message"`
	History []assist.ChatMessage `json:"history"`
}

// GenerateContent drafts body copy for a page, post, or product.
func (h *Handlers) GenerateContent(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Prompt) == "" || !assist.KnownTarget(req.Context) {
		return jsonError(c, http.StatusBadRequest, "prompt is required and context must be page, post, or product")
	}

	content, err := h.assist.GenerateContent(c.Request().Context(), req.Prompt, req.Context)
	if err != nil {
		return assistError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"content": content})
}

// SuggestSEO proposes meta title, meta description, and keywords for
// existing content.
func (h *Handlers) SuggestSEO(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req seoRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Content) == "" || !assist.KnownTarget(req.ContentType) {
		return jsonError(c, http.StatusBadRequest, "content is required and contentType must be page, post, or product")
	}

	suggestion, err := h.assist.SuggestSEO(c.Request().Context(), req.Content, req.ContentType)
	if err != nil {
		return assistError(c, err)
	}
	return c.JSON(http.StatusOK, suggestion)
}

// Chat answers a question about the CMS, grounded on live content
// counts.
func (h *Handlers) Chat(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return jsonError(c, http.StatusBadRequest, "message is required")
	}

	counts, err := h.repo.CountContent(c.Request().Context())
	if err != nil {
		return internalError(c)
	}

	reply, err := h.assist.Chat(c.Request().Context(), req.Message, req.History, assist.SiteCounts{
		Pages:    counts.Pages,
		Posts:    counts.Posts,
		Products: counts.Products,
		Media:    counts.Media,
	})
	if err != nil {
		return assistError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}

// assistError maps assistance failures: disabled feature is a 503,
// everything else an upstream failure.
func assistError(c echo.Context, err error) error {
	if errors.Is(err, assist.ErrDisabled) {
		return jsonError(c, http.StatusServiceUnavailable, "AI assistance is not configured")
	}
	slog.Warn("content assistance request failed", "error", err)
	return jsonError(c, http.StatusBadGateway, "AI request failed")
}
