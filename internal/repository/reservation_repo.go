package repository

import (
	"context"

	"centros-turnos-api/internal/models"

	"gorm.io/gorm"
)

// SlotCount is the number of reservations held by one turno of a block.
type SlotCount struct {
	BlockID uint
	Hora    string
	Total   int64
}

// MunicipalityCount is one row of the reservations-per-municipality ranking.
type MunicipalityCount struct {
	MunicipalityID uint   `json:"id"`
	Nombre         string `json:"nombre"`
	Total          int64  `json:"total"`
}

// TypeCount is the number of reservations made at centers of one type.
type TypeCount struct {
	Tipo  string
	Total int64
}

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateReservation inserts a reservation. A concurrent insert of the same
// seat surfaces as ErrDuplicate.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Create(reservation).Error, "reservation")
}

// GetReservationByCode retrieves a reservation by its confirmation code
func (r *ReservationRepository) GetReservationByCode(ctx context.Context, codigo string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Center").
		Where("codigo = ?", codigo).
		First(&reservation).Error
	if err != nil {
		return nil, translate(err, "reservation")
	}
	return &reservation, nil
}

// TakenSeats returns the seat numbers already booked in one turno, ascending
func (r *ReservationRepository) TakenSeats(ctx context.Context, blockID uint, fecha, hora string) ([]int, error) {
	var seats []int
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("block_id = ? AND fecha = ? AND hora = ?", blockID, fecha, hora).
		Order("cupo ASC").
		Pluck("cupo", &seats).Error
	return seats, err
}

// CountsForCenterDate counts the reservations of every turno of a center on one date
func (r *ReservationRepository) CountsForCenterDate(ctx context.Context, centerID uint, fecha string) ([]SlotCount, error) {
	var counts []SlotCount
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("block_id, hora, COUNT(*) AS total").
		Where("center_id = ? AND fecha = ?", centerID, fecha).
		Group("block_id, hora").
		Scan(&counts).Error
	return counts, err
}

// TopMunicipalities ranks municipalities by reservation count, highest first,
// ties broken by municipality id ascending
func (r *ReservationRepository) TopMunicipalities(ctx context.Context, limit int) ([]MunicipalityCount, error) {
	var rows []MunicipalityCount
	err := r.db.WithContext(ctx).
		Table("reservations").
		Select("municipalities.id AS municipality_id, municipalities.nombre AS nombre, COUNT(reservations.id) AS total").
		Joins("JOIN centers ON centers.id = reservations.center_id").
		Joins("JOIN municipalities ON municipalities.id = centers.municipality_id").
		Group("municipalities.id, municipalities.nombre").
		Order("total DESC, municipalities.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CountByCenterType counts reservations per center type for dates in [desde, hasta]
func (r *ReservationRepository) CountByCenterType(ctx context.Context, desde, hasta string) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Table("reservations").
		Select("centers.tipo AS tipo, COUNT(reservations.id) AS total").
		Joins("JOIN centers ON centers.id = reservations.center_id").
		Where("reservations.fecha >= ? AND reservations.fecha <= ?", desde, hasta).
		Group("centers.tipo").
		Order("centers.tipo ASC").
		Scan(&rows).Error
	return rows, err
}
