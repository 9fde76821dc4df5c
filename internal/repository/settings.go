// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"errors"

	"codeberg.org/oliverandrich/cms/internal/models"
)

// EnsureSettings seeds the settings singleton with defaults when no row
// exists yet.
func (r *Repository) EnsureSettings(ctx context.Context, siteName string) error {
	_, err := r.GetSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = r.UpsertSettings(ctx, &models.SiteSettings{SiteName: siteName})
	return err
}

// GetSettings returns the site settings singleton. The first row wins;
// ErrNotFound means no settings have been written yet.
func (r *Repository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := r.db.GetContext(ctx, &settings, `SELECT * FROM site_settings ORDER BY id LIMIT 1`); err != nil {
		return nil, wrapError(err)
	}
	return &settings, nil
}

// UpsertSettings replaces the singleton row, creating it on first write.
func (r *Repository) UpsertSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	existing, err := r.GetSettings(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		_, insertErr := r.db.ExecContext(ctx,
			`INSERT INTO site_settings (site_name, site_description, logo_url, social_links, cors_origins)
			 VALUES (?, ?, ?, ?, ?)`,
			settings.SiteName, settings.SiteDescription, settings.LogoURL, settings.SocialLinks, settings.CORSOrigins,
		)
		if insertErr != nil {
			return nil, insertErr
		}
		return r.GetSettings(ctx)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE site_settings
		 SET site_name = ?, site_description = ?, logo_url = ?, social_links = ?, cors_origins = ?, updated_at = ?
		 WHERE id = ?`,
		settings.SiteName, settings.SiteDescription, settings.LogoURL,
		settings.SocialLinks, settings.CORSOrigins, now(), existing.ID,
	)
	if err != nil {
		return nil, err
	}
	return r.GetSettings(ctx)
}
