// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// ListProducts returns products in manual sort order, newest first
// within the same position.
func (r *Repository) ListProducts(ctx context.Context, publishedOnly bool) ([]models.Product, error) {
	query := `SELECT * FROM products ORDER BY sort_order, created_at DESC, id DESC`
	if publishedOnly {
		query = `SELECT * FROM products WHERE published = 1 ORDER BY sort_order, created_at DESC, id DESC`
	}
	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a product by ID.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.GetContext(ctx, &product, `SELECT * FROM products WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &product, nil
}

// CreateProduct inserts a new product and returns the stored row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, slug, description, price, meta_title, meta_description, keywords, published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.Slug, product.Description, product.Price,
		product.MetaTitle, product.MetaDescription, product.Keywords, product.Published,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

// UpdateProduct saves the full product row and bumps updated_at.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, slug = ?, description = ?, price = ?, meta_title = ?,
		     meta_description = ?, keywords = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name, product.Slug, product.Description, product.Price, product.MetaTitle,
		product.MetaDescription, product.Keywords, product.Published, now(), product.ID,
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
	return r.GetProduct(ctx, product.ID)
}

// DeleteProduct removes a product by ID. Product images cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
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

// ReorderProducts rewrites sort_order to match the given ID sequence.
func (r *Repository) ReorderProducts(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE products SET sort_order = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListProductImages returns the image gallery for a product, joined
// with the media library.
func (r *Repository) ListProductImages(ctx context.Context, productID int64) ([]models.ProductImageView, error) {
	images := []models.ProductImageView{}
	err := r.db.SelectContext(ctx, &images,
		`SELECT pi.id, m.url, m.alt, pi.sort_order
		 FROM product_images pi
		 JOIN media m ON m.id = pi.media_id
		 WHERE pi.product_id = ?
		 ORDER BY pi.sort_order, pi.id`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	return images, nil
}

// AddProductImage attaches a media item to a product.
func (r *Repository) AddProductImage(ctx context.Context, productID, mediaID int64) (*models.ProductImage, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO product_images (product_id, media_id) VALUES (?, ?)`,
		productID, mediaID,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var image models.ProductImage
	if err := r.db.GetContext(ctx, &image, `SELECT * FROM product_images WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &image, nil
}

// DeleteProductImage detaches an image from its product.
func (r *Repository) DeleteProductImage(ctx context.Context, imageID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = ?`, imageID)
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
