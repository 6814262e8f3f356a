package service

import (
	"context"
	"fmt"

	"centros-turnos-api/internal/config"
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
)

type SiteService struct {
	repos *repository.Repositories
}

func NewSiteService(repos *repository.Repositories) *SiteService {
	return &SiteService{repos: repos}
}

// EnsureDefault loads the site configuration, creating it from defaults on
// first start. The result is meant to be resolved once and passed by value.
func (s *SiteService) EnsureDefault(ctx context.Context, defaults config.SiteDefaults) (models.SiteConfig, error) {
	pageSize := defaults.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	site, err := s.repos.Sites.GetOrCreateSiteConfig(ctx, &models.SiteConfig{
		Titulo:             defaults.Title,
		Descripcion:        defaults.Description,
		EmailContacto:      defaults.ContactEmail,
		ElementosPorPagina: pageSize,
		Habilitado:         true,
	})
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("failed to load site configuration: %w", err)
	}
	return *site, nil
}
