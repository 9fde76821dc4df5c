// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// Media is an uploaded file. StoredName is the random on-disk name,
// Filename the original client name.
type Media struct { //nolint:govet // fieldalignment not critical for models
	ID         int64   `db:"id" json:"id"`
	Filename   string  `db:"filename" json:"filename"`
	StoredName string  `db:"stored_name" json:"storedName"`
	MimeType   string  `db:"mime_type" json:"mimeType"`
	Size       int64   `db:"size" json:"size"`
	URL        string  `db:"url" json:"url"`
	Alt        *string `db:"alt" json:"alt"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
}
