package repository

import (
	"context"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
)

type UserCenterRepository struct {
	db *gorm.DB
}

func NewUserCenterRepo(db *gorm.DB) *UserCenterRepository {
	return &UserCenterRepository{db: db}
}

// AssignUserToCenter assigns an operator to a center
func (r *UserCenterRepository) AssignUserToCenter(ctx context.Context, userID, centerID uint) error {
	userCenter := &models.UserCenter{
		UserID:   userID,
		CenterID: centerID,
	}
	// Use FirstOrCreate to avoid duplicate entries
	return r.db.WithContext(ctx).
		Where("user_id = ? AND center_id = ?", userID, centerID).
		FirstOrCreate(userCenter).Error
}

// RemoveUserFromCenter removes an operator's access to a center
func (r *UserCenterRepository) RemoveUserFromCenter(ctx context.Context, userID, centerID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND center_id = ?", userID, centerID).
		Delete(&models.UserCenter{}).Error
}

// GetUserCenters retrieves all center IDs an operator has access to
func (r *UserCenterRepository) GetUserCenters(ctx context.Context, userID uint) ([]uint, error) {
	var centerIDs []uint
	err := r.db.WithContext(ctx).Model(&models.UserCenter{}).
		Where("user_id = ?", userID).
		Order("center_id ASC").
		Pluck("center_id", &centerIDs).Error
	return centerIDs, err
}

// UserHasAccessToCenter checks if an operator has access to a specific center
func (r *UserCenterRepository) UserHasAccessToCenter(ctx context.Context, userID, centerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserCenter{}).
		Where("user_id = ? AND center_id = ?", userID, centerID).
		Count(&count).Error
	return count > 0, err
}
