package repository

import (
	"context"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepo(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// GetOrCreateSiteConfig returns the site configuration row, creating it from
// defaults when the table is empty
func (r *SiteRepository) GetOrCreateSiteConfig(ctx context.Context, defaults *models.SiteConfig) (*models.SiteConfig, error) {
	var site models.SiteConfig
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Attrs(defaults).
		FirstOrCreate(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}
