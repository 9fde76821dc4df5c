// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// Page is a static site page.
type Page struct { //nolint:govet // fieldalignment not critical for models
	ID              int64   `db:"id" json:"id"`
	Title           string  `db:"title" json:"title"`
	Slug            string  `db:"slug" json:"slug"`
	Content         *string `db:"content" json:"content"`
	SortOrder       int64   `db:"sort_order" json:"sortOrder"`
	MetaTitle       *string `db:"meta_title" json:"metaTitle"`
	MetaDescription *string `db:"meta_description" json:"metaDescription"`
	Keywords        *string `db:"keywords" json:"keywords"`
	Published       bool    `db:"published" json:"published"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt"`
}

// Post is a blog post. Tags holds a JSON-encoded string list.
type Post struct { //nolint:govet // fieldalignment not critical for models
	ID              int64   `db:"id" json:"id"`
	Title           string  `db:"title" json:"title"`
	Slug            string  `db:"slug" json:"slug"`
	Content         *string `db:"content" json:"content"`
	SortOrder       int64   `db:"sort_order" json:"sortOrder"`
	Author          *string `db:"author" json:"author"`
	Tags            *string `db:"tags" json:"tags"`
	PublishedAt     *string `db:"published_at" json:"publishedAt"`
	MetaTitle       *string `db:"meta_title" json:"metaTitle"`
	MetaDescription *string `db:"meta_description" json:"metaDescription"`
	Keywords        *string `db:"keywords" json:"keywords"`
	Published       bool    `db:"published" json:"published"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt"`
}

// Product is a catalogue entry.
type Product struct { //nolint:govet // fieldalignment not critical for models
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Slug            string  `db:"slug" json:"slug"`
	Description     *string `db:"description" json:"description"`
	Price           float64 `db:"price" json:"price"`
	SortOrder       int64   `db:"sort_order" json:"sortOrder"`
	MetaTitle       *string `db:"meta_title" json:"metaTitle"`
	MetaDescription *string `db:"meta_description" json:"metaDescription"`
	Keywords        *string `db:"keywords" json:"keywords"`
	Published       bool    `db:"published" json:"published"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt"`
}

// ProductImage links a product to a media item.
type ProductImage struct {
	ID        int64 `db:"id" json:"id"`
	ProductID int64 `db:"product_id" json:"productId"`
	MediaID   int64 `db:"media_id" json:"mediaId"`
	SortOrder int64 `db:"sort_order" json:"sortOrder"`
}

// ProductImageView is the gallery projection joined with media.
type ProductImageView struct { //nolint:govet // fieldalignment not critical for models
	ID        int64   `db:"id" json:"id"`
	URL       string  `db:"url" json:"url"`
	Alt       *string `db:"alt" json:"alt"`
	SortOrder int64   `db:"sort_order" json:"sortOrder"`
}
