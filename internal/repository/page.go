// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// ListPages returns pages in manual sort order, newest first within the
// same position. With publishedOnly set, unpublished pages are filtered
// out.
func (r *Repository) ListPages(ctx context.Context, publishedOnly bool) ([]models.Page, error) {
	query := `SELECT * FROM pages ORDER BY sort_order, created_at DESC, id DESC`
	if publishedOnly {
		query = `SELECT * FROM pages WHERE published = 1 ORDER BY sort_order, created_at DESC, id DESC`
	}
	pages := []models.Page{}
	if err := r.db.SelectContext(ctx, &pages, query); err != nil {
		return nil, err
	}
	return pages, nil
}

// GetPage retrieves a page by ID.
func (r *Repository) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	var page models.Page
	if err := r.db.GetContext(ctx, &page, `SELECT * FROM pages WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &page, nil
}

// CreatePage inserts a new page and returns the stored row.
func (r *Repository) CreatePage(ctx context.Context, page *models.Page) (*models.Page, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO pages (title, slug, content, meta_title, meta_description, keywords, published)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		page.Title, page.Slug, page.Content, page.MetaTitle, page.MetaDescription, page.Keywords, page.Published,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetPage(ctx, id)
}

// UpdatePage saves the full page row and bumps updated_at.
func (r *Repository) UpdatePage(ctx context.Context, page *models.Page) (*models.Page, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pages
		 SET title = ?, slug = ?, content = ?, meta_title = ?, meta_description = ?,
		     keywords = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		page.Title, page.Slug, page.Content, page.MetaTitle, page.MetaDescription,
		page.Keywords, page.Published, now(), page.ID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetPage(ctx, page.ID)
}

// DeletePage removes a page by ID.
func (r *Repository) DeletePage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
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

// ReorderPages rewrites sort_order to match the given ID sequence.
func (r *Repository) ReorderPages(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE pages SET sort_order = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
