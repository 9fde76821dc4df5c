// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// ListPosts returns blog posts in manual sort order, newest first
// within the same position.
func (r *Repository) ListPosts(ctx context.Context, publishedOnly bool) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY sort_order, created_at DESC, id DESC`
	if publishedOnly {
		query = `SELECT * FROM posts WHERE published = 1 ORDER BY sort_order, created_at DESC, id DESC`
	}
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves a post by ID.
func (r *Repository) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &post, nil
}

// CreatePost inserts a new post and returns the stored row.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (title, slug, content, author, tags, published_at,
		                    meta_title, meta_description, keywords, published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Title, post.Slug, post.Content, post.Author, post.Tags, post.PublishedAt,
		post.MetaTitle, post.MetaDescription, post.Keywords, post.Published,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetPost(ctx, id)
}

// UpdatePost saves the full post row and bumps updated_at.
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, slug = ?, content = ?, author = ?, tags = ?, published_at = ?,
		     meta_title = ?, meta_description = ?, keywords = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title, post.Slug, post.Content, post.Author, post.Tags, post.PublishedAt,
		post.MetaTitle, post.MetaDescription, post.Keywords, post.Published, now(), post.ID,
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
	return r.GetPost(ctx, post.ID)
}

// DeletePost removes a post by ID.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
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

// ReorderPosts rewrites sort_order to match the given ID sequence.
func (r *Repository) ReorderPosts(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE posts SET sort_order = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
