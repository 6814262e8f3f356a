package service

import (
	"context"
	"fmt"
	"strings"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
)

type MunicipalityService struct {
	repos *repository.Repositories
}

func NewMunicipalityService(repos *repository.Repositories) *MunicipalityService {
	return &MunicipalityService{repos: repos}
}

func (s *MunicipalityService) List(ctx context.Context) ([]models.Municipality, error) {
	municipalities, err := s.repos.Municipalities.GetAllMunicipalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list municipalities: %w", err)
	}
	return municipalities, nil
}

// Create adds a municipality. Names are unique.
func (s *MunicipalityService) Create(ctx context.Context, nombre string, userID uint) (*models.Municipality, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fieldError("nombre", "this field is required")
	}

	municipality := &models.Municipality{Nombre: nombre}
	if err := s.repos.Municipalities.CreateMunicipality(ctx, municipality); err != nil {
		return nil, lift(err, "municipality")
	}

	_ = s.repos.Audit.CreateAuditLog(ctx, &userID, "municipality_create",
		fmt.Sprintf("Created municipality: %s (ID: %d)", municipality.Nombre, municipality.ID))
	return municipality, nil
}
