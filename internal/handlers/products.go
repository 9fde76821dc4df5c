// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/validation"
	"github.com/labstack/echo/v4"
)

// ProductsOptions answers CORS preflights for the products collection.
func (h *Handlers) ProductsOptions(c echo.Context) error {
	return h.preflight(c)
}

// ListProducts returns all products for authenticated callers; everyone
// else only ever sees published products.
func (h *Handlers) ListProducts(c echo.Context) error {
	h.setCORS(c)

	publishedOnly := !h.auth.IsAuthenticated(c) || c.QueryParam("published") == "true"
	products, err := h.repo.ListProducts(c.Request().Context(), publishedOnly)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by ID.
func (h *Handlers) GetProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	product, err := h.repo.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product.
func (h *Handlers) CreateProduct(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var in validation.ProductInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	product := &models.Product{
		Name:            in.Name,
		Slug:            in.Slug,
		Description:     in.Description,
		Price:           *in.Price,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Keywords:        in.Keywords,
		Published:       in.Published != nil && *in.Published,
	}

	created, err := h.repo.CreateProduct(c.Request().Context(), product)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct applies a partial update to a product.
func (h *Handlers) UpdateProduct(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	var in validation.ProductUpdateInput
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if fields := validation.Check(&in); fields != nil {
		return fieldErrors(c, fields)
	}

	product, err := h.repo.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	applyProductUpdate(product, &in)

	updated, err := h.repo.UpdateProduct(c.Request().Context(), product)
	if err != nil {
		if isUniqueViolation(err) {
			return fieldErrors(c, map[string][]string{"slug": {"is already in use"}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a product and its image links.
func (h *Handlers) DeleteProduct(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.repo.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ReorderProducts rewrites the product sort order from an ID list.
func (h *Handlers) ReorderProducts(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.IDs == nil {
		return jsonError(c, http.StatusBadRequest, "ids must be an array")
	}

	if err := h.repo.ReorderProducts(c.Request().Context(), req.IDs); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ListProductImages returns the image gallery for a product.
func (h *Handlers) ListProductImages(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	images, err := h.repo.ListProductImages(c.Request().Context(), id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, images)
}

type addImageRequest struct {
	MediaID int64 `json:"mediaId"`
}

// AddProductImage attaches a media item to a product.
func (h *Handlers) AddProductImage(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if _, err := h.repo.GetProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Product not found")
		}
		return internalError(c)
	}

	var req addImageRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.MediaID <= 0 {
		return jsonError(c, http.StatusBadRequest, "mediaId is required")
	}

	if _, err := h.repo.GetMedia(c.Request().Context(), req.MediaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Media not found")
		}
		return internalError(c)
	}

	created, err := h.repo.AddProductImage(c.Request().Context(), id, req.MediaID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

// DeleteProductImage detaches an image from a product.
func (h *Handlers) DeleteProductImage(c echo.Context) error {
	if !h.auth.IsAuthenticated(c) {
		return unauthorized(c)
	}

	imageID, ok := pathID(c, "imageID")
	if !ok {
		return notFound(c)
	}

	if err := h.repo.DeleteProductImage(c.Request().Context(), imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func applyProductUpdate(product *models.Product, in *validation.ProductUpdateInput) {
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Slug != nil {
		product.Slug = *in.Slug
	}
	if in.Description != nil {
		product.Description = in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.MetaTitle != nil {
		product.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		product.MetaDescription = in.MetaDescription
	}
	if in.Keywords != nil {
		product.Keywords = in.Keywords
	}
	if in.Published != nil {
		product.Published = *in.Published
	}
}
