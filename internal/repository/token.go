// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// ListTokens returns all API tokens, newest first.
func (r *Repository) ListTokens(ctx context.Context) ([]models.APIToken, error) {
	tokens := []models.APIToken{}
	if err := r.db.SelectContext(ctx, &tokens, `SELECT * FROM api_tokens ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	return tokens, nil
}

// CreateToken stores a new API token. Only the hash and the display
// hint are persisted.
func (r *Repository) CreateToken(ctx context.Context, name, tokenHash, tokenHint string) (*models.APIToken, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO api_tokens (name, token_hash, token_hint) VALUES (?, ?, ?)`,
		name, tokenHash, tokenHint,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var token models.APIToken
	if err := r.db.GetContext(ctx, &token, `SELECT * FROM api_tokens WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// GetTokenByHash looks up a token by the hash of its secret. Lookup is
// only ever by hash; raw secrets are never persisted.
func (r *Repository) GetTokenByHash(ctx context.Context, tokenHash string) (*models.APIToken, error) {
	var token models.APIToken
	if err := r.db.GetContext(ctx, &token, `SELECT * FROM api_tokens WHERE token_hash = ?`, tokenHash); err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// TouchToken updates a token's last-used timestamp.
func (r *Repository) TouchToken(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE api_tokens SET last_used_at = ? WHERE id = ?`, now(), id)
	return err
}

// DeleteToken revokes an API token.
func (r *Repository) DeleteToken(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM api_tokens WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
