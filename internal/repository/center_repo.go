package repository

import (
	"context"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CenterRepository struct {
	db *gorm.DB
}

func NewCenterRepo(db *gorm.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

// publicScope restricts a query to centers visible through the public API.
func publicScope(db *gorm.DB) *gorm.DB {
	return db.Where("aprobado = ? AND publicado = ? AND activo = ?", true, true, true)
}

// CreateCenter creates a new center
func (r *CenterRepository) CreateCenter(ctx context.Context, center *models.Center) error {
	return translate(r.db.WithContext(ctx).Create(center).Error, "center")
}

// GetCenterByID retrieves a center by ID regardless of its state
func (r *CenterRepository) GetCenterByID(ctx context.Context, id uint) (*models.Center, error) {
	var center models.Center
	err := r.db.WithContext(ctx).Preload("Municipality").First(&center, id).Error
	if err != nil {
		return nil, translate(err, "center")
	}
	return &center, nil
}

// GetPublicCenterByID retrieves an approved, published and active center
func (r *CenterRepository) GetPublicCenterByID(ctx context.Context, id uint) (*models.Center, error) {
	var center models.Center
	err := r.db.WithContext(ctx).
		Scopes(publicScope).
		Preload("Municipality").
		Where("id = ?", id).
		First(&center).Error
	if err != nil {
		return nil, translate(err, "center")
	}
	return &center, nil
}

// LockPublicCenter retrieves a public center and holds a shared row lock on
// it until the surrounding transaction ends, so the center cannot be
// unpublished or deactivated under a booking in flight
func (r *CenterRepository) LockPublicCenter(ctx context.Context, id uint) (*models.Center, error) {
	var center models.Center
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Scopes(publicScope).
		Where("id = ?", id).
		First(&center).Error
	if err != nil {
		return nil, translate(err, "center")
	}
	return &center, nil
}

// ListPublicCenters retrieves one page of public centers and the total count
func (r *CenterRepository) ListPublicCenters(ctx context.Context, limit, offset int) ([]models.Center, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&models.Center{}).Scopes(publicScope), limit, offset)
}

// ListAllCenters retrieves one page of every center, including pending and deactivated ones
func (r *CenterRepository) ListAllCenters(ctx context.Context, limit, offset int) ([]models.Center, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&models.Center{}), limit, offset)
}

func (r *CenterRepository) page(q *gorm.DB, limit, offset int) ([]models.Center, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var centers []models.Center
	if err := q.Preload("Municipality").Order("nombre ASC, id ASC").Find(&centers).Error; err != nil {
		return nil, 0, err
	}
	return centers, total, nil
}

// GetAllPublicCenters retrieves every public center
func (r *CenterRepository) GetAllPublicCenters(ctx context.Context) ([]models.Center, error) {
	var centers []models.Center
	err := r.db.WithContext(ctx).
		Scopes(publicScope).
		Preload("Municipality").
		Order("nombre ASC, id ASC").
		Find(&centers).Error
	return centers, err
}

// ExistsActiveCenter checks whether an active center already uses the
// (nombre, direccion, municipio) identity
func (r *CenterRepository) ExistsActiveCenter(ctx context.Context, nombre, direccion string, municipalityID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Center{}).
		Where("nombre = ? AND direccion = ? AND municipality_id = ? AND activo = ?", nombre, direccion, municipalityID, true).
		Count(&count).Error
	return count > 0, err
}

// UpdateCenterFlag sets one of the workflow flags (aprobado, publicado, activo)
func (r *CenterRepository) UpdateCenterFlag(ctx context.Context, id uint, column string, value bool) error {
	return r.db.WithContext(ctx).Model(&models.Center{}).
		Where("id = ?", id).
		Update(column, value).Error
}

// GetCenterTypes retrieves the distinct types of active centers
func (r *CenterRepository) GetCenterTypes(ctx context.Context) ([]string, error) {
	var tipos []string
	err := r.db.WithContext(ctx).Model(&models.Center{}).
		Where("activo = ?", true).
		Distinct().
		Order("tipo ASC").
		Pluck("tipo", &tipos).Error
	return tipos, err
}
