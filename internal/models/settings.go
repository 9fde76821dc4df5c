// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// SiteSettings is a logical singleton; the first row wins. SocialLinks
// and CORSOrigins hold JSON-encoded values as received from the client.
type SiteSettings struct { //nolint:govet // fieldalignment not critical for models
	ID              int64   `db:"id" json:"id"`
	SiteName        string  `db:"site_name" json:"siteName"`
	SiteDescription *string `db:"site_description" json:"siteDescription"`
	LogoURL         *string `db:"logo_url" json:"logoUrl"`
	SocialLinks     *string `db:"social_links" json:"socialLinks"`
	CORSOrigins     *string `db:"cors_origins" json:"corsOrigins"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt"`
}
