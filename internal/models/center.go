package models

import (
	"time"

	"gorm.io/datatypes"
)

// Center represents a vaccination/health center ("centro") that citizens can book appointments at.
// Centers are never hard-deleted; Activo works as the soft-delete flag.
type Center struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Nombre         string         `gorm:"size:255;not null;index:idx_center_identity" json:"nombre"`
	Direccion      string         `gorm:"size:255;not null;index:idx_center_identity" json:"direccion"`
	Telefono       string         `gorm:"size:30;not null" json:"telefono"`
	Apertura       datatypes.Time `gorm:"not null" json:"apertura"`
	Cierre         datatypes.Time `gorm:"not null" json:"cierre"`
	Tipo           string         `gorm:"column:tipo;size:100;not null;index" json:"tipo_centro"`
	Email          string         `gorm:"size:255;not null" json:"email"`
	Web            *string        `gorm:"size:255" json:"web,omitempty"`
	Latitud        float64        `json:"latitud"`
	Longitud       float64        `json:"longitud"`
	MunicipalityID uint           `gorm:"not null;index:idx_center_identity" json:"id_municipio"`
	Aprobado       bool           `gorm:"not null;default:false;index" json:"aprobado"`
	Publicado      bool           `gorm:"not null;default:false" json:"publicado"`
	Activo         bool           `gorm:"not null;default:true" json:"activo"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Relationships
	Municipality *Municipality `gorm:"foreignKey:MunicipalityID" json:"municipio,omitempty"`
}

// TableName specifies the table name for Center model
func (Center) TableName() string {
	return "centers"
}

// IsPublic reports whether the center may be shown through the public API.
func (c *Center) IsPublic() bool {
	return c.Aprobado && c.Publicado && c.Activo
}

// IsOpenDuring reports whether [start, end) fits inside the opening hours.
func (c *Center) IsOpenDuring(start, end datatypes.Time) bool {
	return start >= c.Apertura && end <= c.Cierre
}
