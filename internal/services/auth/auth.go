// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the two credential paths of the API: the
// signed session cookie used by the admin dashboard and the hashed
// bearer tokens used by headless consumers.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure. Unknown
// email and wrong password deliberately collapse into the same error.
var ErrInvalidCredentials = errors.New("invalid credentials")

const touchTimeout = 5 * time.Second

// Service verifies credentials against the store.
type Service struct {
	repo     *repository.Repository
	sessions *session.Manager
}

// NewService creates the auth service.
func NewService(repo *repository.Repository, sessions *session.Manager) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Login verifies an email/password pair and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin seeds the initial admin user if it does not exist yet.
// Empty credentials skip seeding.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.repo.CreateUser(ctx, email, hash); err != nil {
		return err
	}
	slog.Info("admin user seeded", "email", email)
	return nil
}

// CreateToken mints a new API token. The raw secret is returned exactly
// once; only its hash and a display hint are stored.
func (s *Service) CreateToken(ctx context.Context, name string) (*models.APIToken, string, error) {
	raw, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}

	token, err := s.repo.CreateToken(ctx, name, HashToken(raw), raw[len(raw)-hintLength:])
	if err != nil {
		return nil, "", err
	}
	return token, raw, nil
}

// IsAuthenticated decides whether the request carries a valid
// credential. A valid session cookie short-circuits without touching
// the database; otherwise the bearer token is hashed and looked up by
// hash. Every failure mode collapses to false, never an error.
func (s *Service) IsAuthenticated(c echo.Context) bool {
	if s.sessions.Get(c) != nil {
		return true
	}

	raw, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return false
	}

	token, err := s.repo.GetTokenByHash(c.Request().Context(), HashToken(raw))
	if err != nil {
		return false
	}

	// Last-used bookkeeping must not gate the trust decision.
	go func(id int64) {
		ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
		defer cancel()
		if err := s.repo.TouchToken(ctx, id); err != nil {
			slog.Warn("failed to update token last-used timestamp", "token_id", id, "error", err)
		}
	}(token.ID)

	return true
}
