package repository

import (
	"context"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MunicipalityRepository struct {
	db *gorm.DB
}

func NewMunicipalityRepo(db *gorm.DB) *MunicipalityRepository {
	return &MunicipalityRepository{db: db}
}

// GetAllMunicipalities retrieves every municipality ordered by name
func (r *MunicipalityRepository) GetAllMunicipalities(ctx context.Context) ([]models.Municipality, error) {
	var municipalities []models.Municipality
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&municipalities).Error
	return municipalities, err
}

// LockMunicipality retrieves a municipality and holds a row lock on it until
// the surrounding transaction ends. Center registrations in the same
// municipality are serialised through this lock.
func (r *MunicipalityRepository) LockMunicipality(ctx context.Context, id uint) (*models.Municipality, error) {
	var municipality models.Municipality
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&municipality, id).Error
	if err != nil {
		return nil, translate(err, "municipality")
	}
	return &municipality, nil
}

// CreateMunicipality creates a new municipality
func (r *MunicipalityRepository) CreateMunicipality(ctx context.Context, municipality *models.Municipality) error {
	return translate(r.db.WithContext(ctx).Create(municipality).Error, "municipality")
}
