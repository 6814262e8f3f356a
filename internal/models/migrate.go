package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the application.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Municipality{},
		&Center{},
		&UserCenter{},
		&Block{},
		&Reservation{},
		&AuditLog{},
		&SiteConfig{},
	)
}
