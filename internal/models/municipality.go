package models

import "time"

// Municipality is reference data grouping centers geographically ("municipio").
type Municipality struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:150;not null;uniqueIndex" json:"nombre"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for Municipality model
func (Municipality) TableName() string {
	return "municipalities"
}
