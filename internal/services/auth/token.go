// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TokenPrefix identifies API tokens on the wire. A full token is the
// prefix followed by 32 hex characters of randomness.
const TokenPrefix = "cms_"

const (
	tokenRandomBytes = 16
	hintLength       = 4
	bearerScheme     = "Bearer "
)

// GenerateToken mints a new raw API token secret.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return TokenPrefix + hex.EncodeToString(buf), nil
}

// HashToken returns the hex SHA-256 digest of a raw token. Tokens are
// stored and looked up only in this form.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// MaskToken renders the display form of a token from its hint, e.g.
// "cms_****************************ab12".
func MaskToken(hint string) string {
	return TokenPrefix + strings.Repeat("*", 2*tokenRandomBytes-hintLength) + hint
}

// BearerToken extracts a raw API token from an Authorization header
// value. It reports false for a missing header, a non-bearer scheme, or
// a token without the recognized prefix.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerScheme+TokenPrefix) {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerScheme))
	return raw, true
}
