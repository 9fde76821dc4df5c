// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCheckPageInput(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, Check(&PageInput{Title: "About", Slug: "about"}))
	})

	t.Run("missing required fields", func(t *testing.T) {
		fields := Check(&PageInput{})
		assert.Equal(t, []string{"is required"}, fields["title"])
		assert.Equal(t, []string{"is required"}, fields["slug"])
	})

	t.Run("bad slug", func(t *testing.T) {
		tests := []string{"About", "with space", "-leading", "trailing-", "double--dash", "ümlaut"}
		for _, slug := range tests {
			fields := Check(&PageInput{Title: "About", Slug: slug})
			assert.Contains(t, fields, "slug", "slug %q should be rejected", slug)
		}
	})

	t.Run("good slugs", func(t *testing.T) {
		tests := []string{"about", "about-us", "page-2", "a", "2024"}
		for _, slug := range tests {
			assert.Nil(t, Check(&PageInput{Title: "About", Slug: slug}), "slug %q should be accepted", slug)
		}
	})
}

func TestCheckProductInput(t *testing.T) {
	t.Run("price is required", func(t *testing.T) {
		fields := Check(&ProductInput{Name: "Widget", Slug: "widget"})
		assert.Equal(t, []string{"is required"}, fields["price"])
	})

	t.Run("zero price is valid", func(t *testing.T) {
		assert.Nil(t, Check(&ProductInput{Name: "Widget", Slug: "widget", Price: ptr(0.0)}))
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		fields := Check(&ProductInput{Name: "Widget", Slug: "widget", Price: ptr(-1.0)})
		assert.Equal(t, []string{"must not be negative"}, fields["price"])
	})
}

func TestCheckUpdateInputs(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		assert.Nil(t, Check(&PageUpdateInput{}))
		assert.Nil(t, Check(&PostUpdateInput{}))
		assert.Nil(t, Check(&ProductUpdateInput{}))
	})

	t.Run("present fields are still validated", func(t *testing.T) {
		fields := Check(&PageUpdateInput{Slug: ptr("Not A Slug")})
		assert.Contains(t, fields, "slug")

		fields = Check(&ProductUpdateInput{Price: ptr(-1.0)})
		assert.Contains(t, fields, "price")
	})
}

func TestCheckSettingsInput(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, Check(&SettingsInput{
			SiteName:    ptr("My Site"),
			SocialLinks: map[string]string{"mastodon": "https://example.social/@me"},
			CORSOrigins: []string{"https://a.example"},
		}))
	})

	t.Run("empty origin entry is rejected", func(t *testing.T) {
		fields := Check(&SettingsInput{CORSOrigins: []string{""}})
		assert.NotEmpty(t, fields)
	})
}
