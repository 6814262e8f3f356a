package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteConfig is the single site-wide settings row ("sitio").
type SiteConfig struct {
	ID                 uint           `gorm:"primaryKey" json:"-"`
	Titulo             string         `gorm:"size:255;not null" json:"titulo"`
	Descripcion        string         `gorm:"type:text" json:"descripcion"`
	EmailContacto      string         `gorm:"size:255" json:"email_contacto"`
	ElementosPorPagina int            `gorm:"not null;default:10" json:"elementos_por_pagina"`
	Habilitado         bool           `gorm:"not null;default:true" json:"habilitado"`
	Metadata           datatypes.JSON `json:"metadata,omitempty"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// TableName specifies the table name for SiteConfig model
func (SiteConfig) TableName() string {
	return "site_configs"
}

// PageSize returns the configured pagination size, never less than one.
func (s SiteConfig) PageSize() int {
	if s.ElementosPorPagina < 1 {
		return 1
	}
	return s.ElementosPorPagina
}
