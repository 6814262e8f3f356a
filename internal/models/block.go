package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultSlotMinutes is the length of a turno when a block does not specify one.
const DefaultSlotMinutes = 30

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Block represents a time window ("bloque") during which a center accepts
// appointments. A block either recurs weekly (DiaSemana) or applies to a
// single date (Fecha); Cupo is the number of reservations each turno admits.
type Block struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CenterID      uint           `gorm:"not null;index" json:"centro_id"`
	DiaSemana     *int           `gorm:"index" json:"dia_semana,omitempty"` // 0=Sunday ... 6=Saturday
	Fecha         *string        `gorm:"size:10;index" json:"fecha,omitempty"`
	HoraInicio    datatypes.Time `gorm:"not null" json:"hora_inicio"`
	HoraFin       datatypes.Time `gorm:"not null" json:"hora_fin"`
	DuracionTurno int            `gorm:"not null;default:30" json:"duracion_turno"`
	Cupo          int            `gorm:"not null" json:"cupo"`
	Activo        bool           `gorm:"not null;default:true" json:"activo"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relationships
	Center *Center `gorm:"foreignKey:CenterID" json:"centro,omitempty"`
}

// TableName specifies the table name for Block model
func (Block) TableName() string {
	return "blocks"
}

// AppliesTo reports whether the block offers turnos on the given calendar day.
func (b *Block) AppliesTo(day time.Time) bool {
	if b.Fecha != nil {
		return *b.Fecha == day.Format(DateLayout)
	}
	return b.DiaSemana != nil && *b.DiaSemana == int(day.Weekday())
}

// SlotDuration returns the turno length, falling back to DefaultSlotMinutes.
func (b *Block) SlotDuration() time.Duration {
	minutes := b.DuracionTurno
	if minutes <= 0 {
		minutes = DefaultSlotMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// Slots returns the start time of every turno in the block, ascending.
// A turno is only produced when it ends at or before HoraFin.
func (b *Block) Slots() []datatypes.Time {
	step := datatypes.Time(b.SlotDuration())
	var slots []datatypes.Time
	for start := b.HoraInicio; start+step <= b.HoraFin; start += step {
		slots = append(slots, start)
	}
	return slots
}

// HasSlotAt reports whether a turno starts exactly at t.
func (b *Block) HasSlotAt(t datatypes.Time) bool {
	if t < b.HoraInicio {
		return false
	}
	step := datatypes.Time(b.SlotDuration())
	return (t-b.HoraInicio)%step == 0 && t+step <= b.HoraFin
}
