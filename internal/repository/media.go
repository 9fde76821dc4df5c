// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// ListMedia returns all media items, newest first.
func (r *Repository) ListMedia(ctx context.Context) ([]models.Media, error) {
	items := []models.Media{}
	if err := r.db.SelectContext(ctx, &items, `SELECT * FROM media ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	return items, nil
}

// GetMedia retrieves a media item by ID.
func (r *Repository) GetMedia(ctx context.Context, id int64) (*models.Media, error) {
	var item models.Media
	if err := r.db.GetContext(ctx, &item, `SELECT * FROM media WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &item, nil
}

// CreateMedia records an uploaded file and returns the stored row.
func (r *Repository) CreateMedia(ctx context.Context, item *models.Media) (*models.Media, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO media (filename, stored_name, mime_type, size, url, alt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Filename, item.StoredName, item.MimeType, item.Size, item.URL, item.Alt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetMedia(ctx, id)
}

// DeleteMedia removes a media row and returns the deleted record so the
// caller can unlink the file on disk.
func (r *Repository) DeleteMedia(ctx context.Context, id int64) (*models.Media, error) {
	item, err := r.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return item, nil
}
