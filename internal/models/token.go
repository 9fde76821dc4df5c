// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// APIToken is a long-lived credential for headless API consumers.
// Only the SHA-256 hash of the secret is stored; the raw value is
// returned exactly once at creation time. TokenHint keeps the last
// four characters for display and plays no part in authentication.
type APIToken struct { //nolint:govet // fieldalignment not critical for models
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	TokenHash  string  `db:"token_hash" json:"-"`
	TokenHint  string  `db:"token_hint" json:"-"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
	LastUsedAt *string `db:"last_used_at" json:"lastUsedAt"`
}
