// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/cms/internal/models"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPageCRUD(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreatePage(ctx, &models.Page{
		Title:   "About",
		Slug:    "about",
		Content: ptr("Hello"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "About", created.Title)
	assert.NotEmpty(t, created.CreatedAt)
	assert.False(t, created.Published)

	got, err := repo.GetPage(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, got.Slug)

	got.Title = "About Us"
	got.Published = true
	updated, err := repo.UpdatePage(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "About Us", updated.Title)
	assert.True(t, updated.Published)

	require.NoError(t, repo.DeletePage(ctx, created.ID))
	_, err = repo.GetPage(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPageNotFound(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetPage(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.UpdatePage(ctx, &models.Page{ID: 42, Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.DeletePage(ctx, 42), repository.ErrNotFound)
}

func TestPageSlugUnique(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePage(ctx, &models.Page{Title: "One", Slug: "same"})
	require.NoError(t, err)

	_, err = repo.CreatePage(ctx, &models.Page{Title: "Two", Slug: "same"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestListPagesPublishedFilter(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePage(ctx, &models.Page{Title: "Draft", Slug: "draft"})
	require.NoError(t, err)
	_, err = repo.CreatePage(ctx, &models.Page{Title: "Live", Slug: "live", Published: true})
	require.NoError(t, err)

	all, err := repo.ListPages(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := repo.ListPages(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "live", published[0].Slug)
}

func TestReorderPages(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreatePage(ctx, &models.Page{Title: "First", Slug: "first"})
	require.NoError(t, err)
	second, err := repo.CreatePage(ctx, &models.Page{Title: "Second", Slug: "second"})
	require.NoError(t, err)
	third, err := repo.CreatePage(ctx, &models.Page{Title: "Third", Slug: "third"})
	require.NoError(t, err)

	require.NoError(t, repo.ReorderPages(ctx, []int64{third.ID, first.ID, second.ID}))

	pages, err := repo.ListPages(ctx, false)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "third", pages[0].Slug)
	assert.Equal(t, "first", pages[1].Slug)
	assert.Equal(t, "second", pages[2].Slug)
}

func TestPostCRUD(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, &models.Post{
		Title:  "Launch",
		Slug:   "launch",
		Author: ptr("Alice"),
		Tags:   ptr(`["news","release"]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *created.Author)

	created.PublishedAt = ptr("2026-08-01 10:00:00")
	created.Published = true
	updated, err := repo.UpdatePost(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.Published)
	assert.Equal(t, "2026-08-01 10:00:00", *updated.PublishedAt)

	require.NoError(t, repo.DeletePost(ctx, created.ID))
	_, err = repo.GetPost(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductImages(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{Name: "Widget", Slug: "widget", Price: 9.99})
	require.NoError(t, err)

	item, err := repo.CreateMedia(ctx, &models.Media{
		Filename:   "widget.png",
		StoredName: "abc.png",
		MimeType:   "image/png",
		Size:       1024,
		URL:        "/uploads/abc.png",
		Alt:        ptr("a widget"),
	})
	require.NoError(t, err)

	image, err := repo.AddProductImage(ctx, product.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, image.ProductID)

	images, err := repo.ListProductImages(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "/uploads/abc.png", images[0].URL)
	assert.Equal(t, "a widget", *images[0].Alt)

	// Deleting the product cascades to its image links
	require.NoError(t, repo.DeleteProduct(ctx, product.ID))
	images, err = repo.ListProductImages(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	// The media item itself survives
	_, err = repo.GetMedia(ctx, item.ID)
	assert.NoError(t, err)
}

func TestTokens(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	token, err := repo.CreateToken(ctx, "ci", "hash-1", "ab12")
	require.NoError(t, err)
	assert.Equal(t, "ci", token.Name)
	assert.Nil(t, token.LastUsedAt)

	got, err := repo.GetTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)

	_, err = repo.GetTokenByHash(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.TouchToken(ctx, token.ID))
	touched, err := repo.GetTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.NotNil(t, touched.LastUsedAt)

	// Hashes are unique
	_, err = repo.CreateToken(ctx, "other", "hash-1", "cd34")
	assert.Error(t, err)

	require.NoError(t, repo.DeleteToken(ctx, token.ID))
	assert.ErrorIs(t, repo.DeleteToken(ctx, token.ID), repository.ErrNotFound)
}

func TestSettingsSingleton(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetSettings(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	first, err := repo.UpsertSettings(ctx, &models.SiteSettings{SiteName: "My CMS"})
	require.NoError(t, err)
	assert.Equal(t, "My CMS", first.SiteName)

	second, err := repo.UpsertSettings(ctx, &models.SiteSettings{
		SiteName:    "Renamed",
		CORSOrigins: ptr(`["https://a.example"]`),
	})
	require.NoError(t, err)

	// Still the same row
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Renamed", second.SiteName)
	assert.Equal(t, `["https://a.example"]`, *second.CORSOrigins)
}

func TestUsers(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	user, err := repo.CreateUser(ctx, "admin@example.com", "some-hash")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	byEmail, err := repo.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "some-hash", byID.PasswordHash)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCountContent(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	ctx := context.Background()

	counts, err := repo.CountContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, &repository.ContentCounts{}, counts)

	_, err = repo.CreatePage(ctx, &models.Page{Title: "Home", Slug: "home"})
	require.NoError(t, err)
	_, err = repo.CreatePost(ctx, &models.Post{Title: "Hello", Slug: "hello"})
	require.NoError(t, err)
	_, err = repo.CreateProduct(ctx, &models.Product{Name: "Widget", Slug: "widget", Price: 9.5})
	require.NoError(t, err)

	counts, err = repo.CountContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pages)
	assert.Equal(t, int64(1), counts.Posts)
	assert.Equal(t, int64(1), counts.Products)
	assert.Equal(t, int64(0), counts.Media)
}
