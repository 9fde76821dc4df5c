// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import "context"

// ContentCounts holds per-collection row counts.
type ContentCounts struct {
	Pages    int64 `db:"pages"`
	Posts    int64 `db:"posts"`
	Products int64 `db:"products"`
	Media    int64 `db:"media"`
}

// CountContent returns the row count of every content collection in a
// single query.
func (r *Repository) CountContent(ctx context.Context) (*ContentCounts, error) {
	var counts ContentCounts
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM pages) AS pages,
			(SELECT COUNT(*) FROM posts) AS posts,
			(SELECT COUNT(*) FROM products) AS products,
			(SELECT COUNT(*) FROM media) AS media`)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
