package repository

import (
	"context"
	"time"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// CreateBlock creates a new block
func (r *BlockRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	return translate(r.db.WithContext(ctx).Create(block).Error, "block")
}

// GetBlockByID retrieves an active block by ID
func (r *BlockRepository) GetBlockByID(ctx context.Context, id uint) (*models.Block, error) {
	var block models.Block
	err := r.db.WithContext(ctx).Where("id = ? AND activo = ?", id, true).First(&block).Error
	if err != nil {
		return nil, translate(err, "block")
	}
	return &block, nil
}

// LockBlock retrieves an active block of a center and holds a row lock on it
// until the surrounding transaction ends
func (r *BlockRepository) LockBlock(ctx context.Context, id, centerID uint) (*models.Block, error) {
	var block models.Block
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND center_id = ? AND activo = ?", id, centerID, true).
		First(&block).Error
	if err != nil {
		return nil, translate(err, "block")
	}
	return &block, nil
}

// GetBlocksByCenterID retrieves the active blocks of a center
func (r *BlockRepository) GetBlocksByCenterID(ctx context.Context, centerID uint) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND activo = ?", centerID, true).
		Order("fecha ASC, dia_semana ASC, hora_inicio ASC, id ASC").
		Find(&blocks).Error
	return blocks, err
}

// GetBlocksForDate retrieves the active blocks of a center that offer turnos
// on the given day: blocks dated that day plus weekly blocks for its weekday
func (r *BlockRepository) GetBlocksForDate(ctx context.Context, centerID uint, day time.Time) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND activo = ?", centerID, true).
		Where(r.db.Where("fecha = ?", day.Format(models.DateLayout)).
			Or("fecha IS NULL AND dia_semana = ?", int(day.Weekday()))).
		Order("id ASC").
		Find(&blocks).Error
	return blocks, err
}

// DeactivateBlock soft deletes a block by setting activo to false
func (r *BlockRepository) DeactivateBlock(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Block{}).
		Where("id = ?", id).
		Update("activo", false).Error
}
