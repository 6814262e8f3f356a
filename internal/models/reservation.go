package models

import "time"

// Reservation records a citizen's booking of one turno (block + date + time).
// Reservations are never deleted; they are the audit trail for capacity.
//
// Cupo is the seat number inside the turno, from 1 to the block capacity.
// The unique index over (block, date, time, seat) makes it impossible to
// store more reservations than the block admits.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Codigo    string    `gorm:"size:26;not null;uniqueIndex" json:"codigo"`
	CenterID  uint      `gorm:"not null;index" json:"centro_id"`
	BlockID   uint      `gorm:"not null;uniqueIndex:idx_reservation_seat,priority:1" json:"bloque_id"`
	Fecha     string    `gorm:"size:10;not null;index;uniqueIndex:idx_reservation_seat,priority:2" json:"fecha"`
	Hora      string    `gorm:"size:5;not null;uniqueIndex:idx_reservation_seat,priority:3" json:"hora"`
	Cupo      int       `gorm:"not null;uniqueIndex:idx_reservation_seat,priority:4" json:"cupo"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Telefono  string    `gorm:"size:30;not null" json:"telefono"`
	Nombre    string    `gorm:"size:100" json:"nombre,omitempty"`
	Apellido  string    `gorm:"size:100" json:"apellido,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Center *Center `gorm:"foreignKey:CenterID" json:"centro,omitempty"`
	Block  *Block  `gorm:"foreignKey:BlockID" json:"bloque,omitempty"`
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
