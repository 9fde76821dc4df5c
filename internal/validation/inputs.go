// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package validation

// PageInput creates a page. Optional fields are pointers so absent and
// empty values stay distinguishable.
type PageInput struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Slug            string  `json:"slug" validate:"required,max=200,slug"`
	Content         *string `json:"content" validate:"omitempty,max=100000"`
	MetaTitle       *string `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool   `json:"published"`
}

// PageUpdateInput is the partial form of PageInput: only present fields
// are applied.
type PageUpdateInput struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Slug            *string `json:"slug" validate:"omitempty,max=200,slug"`
	Content         *string `json:"content" validate:"omitempty,max=100000"`
	MetaTitle       *string `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool   `json:"published"`
}

// PostInput creates a blog post.
type PostInput struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Slug            string  `json:"slug" validate:"required,max=200,slug"`
	Content         *string `json:"content" validate:"omitempty,max=100000"`
	Author          *string `json:"author" validate:"omitempty,max=200"`
	Tags            *string `json:"tags" validate:"omitempty,max=500"`
	PublishedAt     *string `json:"publishedAt" validate:"omitempty,max=100"`
	MetaTitle       *string `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool   `json:"published"`
}

// PostUpdateInput is the partial form of PostInput.
type PostUpdateInput struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Slug            *string `json:"slug" validate:"omitempty,max=200,slug"`
	Content         *string `json:"content" validate:"omitempty,max=100000"`
	Author          *string `json:"author" validate:"omitempty,max=200"`
	Tags            *string `json:"tags" validate:"omitempty,max=500"`
	PublishedAt     *string `json:"publishedAt" validate:"omitempty,max=100"`
	MetaTitle       *string `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool   `json:"published"`
}

// ProductInput creates a product.
type ProductInput struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Slug            string   `json:"slug" validate:"required,max=200,slug"`
	Description     *string  `json:"description" validate:"omitempty,max=100000"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	MetaTitle       *string  `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string  `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string  `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool    `json:"published"`
}

// ProductUpdateInput is the partial form of ProductInput.
type ProductUpdateInput struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Slug            *string  `json:"slug" validate:"omitempty,max=200,slug"`
	Description     *string  `json:"description" validate:"omitempty,max=100000"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	MetaTitle       *string  `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string  `json:"metaDescription" validate:"omitempty,max=500"`
	Keywords        *string  `json:"keywords" validate:"omitempty,max=500"`
	Published       *bool    `json:"published"`
}

// SettingsInput updates the site settings singleton.
type SettingsInput struct {
	SiteName        *string           `json:"siteName" validate:"omitempty,min=1,max=200"`
	SiteDescription *string           `json:"siteDescription" validate:"omitempty,max=1000"`
	LogoURL         *string           `json:"logoUrl" validate:"omitempty,max=500"`
	SocialLinks     map[string]string `json:"socialLinks" validate:"omitempty,dive,max=500"`
	CORSOrigins     []string          `json:"corsOrigins" validate:"omitempty,dive,min=1,max=500"`
}
