package service

import (
	"context"
	"fmt"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
)

// TopMunicipalities ranks municipalities by reservation count, highest first,
// ties broken by municipality id.
func (s *ReservationService) TopMunicipalities(ctx context.Context, n int) ([]repository.MunicipalityCount, error) {
	if n <= 0 {
		return nil, fieldError("n", "must be a positive number")
	}
	rows, err := s.repos.Reservations.TopMunicipalities(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to rank municipalities: %w", err)
	}
	if rows == nil {
		rows = []repository.MunicipalityCount{}
	}
	return rows, nil
}

// ReservationsByType counts reservations per center type for dates in
// [start, end], both inclusive.
func (s *ReservationService) ReservationsByType(ctx context.Context, start, end string) (map[string]int64, error) {
	from, err := models.ParseDate(start, s.loc)
	if err != nil {
		return nil, fieldError("fecha_inicio", "must be a date in YYYY-MM-DD format")
	}
	to, err := models.ParseDate(end, s.loc)
	if err != nil {
		return nil, fieldError("fecha_fin", "must be a date in YYYY-MM-DD format")
	}
	if from.After(to) {
		return nil, fieldError("fecha_fin", "end date must not be before start date")
	}

	rows, err := s.repos.Reservations.CountByCenterType(ctx, from.Format(models.DateLayout), to.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Tipo] = r.Total
	}
	return counts, nil
}
