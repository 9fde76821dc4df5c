// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package cors resolves the cross-origin allow-list from site settings.
//
// The allow-list lives in the mutable settings singleton and is cached
// per process with a short TTL. A settings write invalidates the cache
// so the writer observes its own change immediately; other processes
// converge within the TTL.
package cors

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"sync"
	"time"

	"codeberg.org/oliverandrich/cms/internal/repository"
	"github.com/labstack/echo/v4"
)

const (
	cacheTTL        = time.Minute
	preflightMaxAge = 24 * time.Hour
)

// Resolver owns the cached origin snapshot. All access goes through
// AllowedOrigins and Invalidate; the cache is never exposed directly.
type Resolver struct {
	repo      *repository.Repository
	ttl       time.Duration
	mu        sync.Mutex
	origins   []string
	fetchedAt time.Time
}

// NewResolver creates a resolver with the default 60 second TTL.
func NewResolver(repo *repository.Repository) *Resolver {
	return &Resolver{repo: repo, ttl: cacheTTL}
}

// AllowedOrigins returns the cached origin list while it is fresh,
// reloading from site settings otherwise. It never fails: a missing
// settings row or malformed stored JSON yields an empty list, which
// denies every origin.
func (r *Resolver) AllowedOrigins(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.origins != nil && time.Since(r.fetchedAt) < r.ttl {
		return r.origins
	}

	origins := []string{}
	if settings, err := r.repo.GetSettings(ctx); err == nil && settings.CORSOrigins != nil {
		if err := json.Unmarshal([]byte(*settings.CORSOrigins), &origins); err != nil {
			origins = []string{}
		}
	}

	r.origins = origins
	r.fetchedAt = time.Now()
	return r.origins
}

// Invalidate drops the snapshot so the next AllowedOrigins call reloads
// from the store. Called after every settings write.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.origins = nil
}

// Headers returns the CORS response headers for a declared origin, or
// an empty map when no Origin was sent, the allow-list is empty, or the
// origin is not listed. Matching is exact-string only.
func (r *Resolver) Headers(ctx context.Context, origin string) map[string]string {
	if origin == "" {
		return map[string]string{}
	}
	if !slices.Contains(r.AllowedOrigins(ctx), origin) {
		return map[string]string{}
	}
	return map[string]string{
		echo.HeaderAccessControlAllowOrigin:  origin,
		echo.HeaderAccessControlAllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		echo.HeaderAccessControlAllowHeaders: "Content-Type, Authorization",
		echo.HeaderAccessControlMaxAge:       strconv.Itoa(int(preflightMaxAge.Seconds())),
	}
}
