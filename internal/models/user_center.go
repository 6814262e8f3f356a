package models

import "time"

// UserCenter represents the many-to-many relationship between operators and centers
// This table controls which centers an operator may manage blocks for
type UserCenter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_center" json:"user_id"`
	CenterID  uint      `gorm:"not null;uniqueIndex:idx_user_center;index" json:"centro_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Center Center `gorm:"foreignKey:CenterID" json:"centro,omitempty"`
}

// TableName specifies the table name for UserCenter model
func (UserCenter) TableName() string {
	return "user_centers"
}
