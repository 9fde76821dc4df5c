// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// User is an admin dashboard account. Users are created at seed time;
// the password hash never leaves the server.
type User struct {
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	ID           int64  `db:"id" json:"id"`
}
