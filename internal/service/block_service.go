package service

import (
	"context"
	"fmt"
	"time"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"

	"gorm.io/datatypes"
)

// BlockFields carries the data of a new block. Exactly one of DiaSemana and
// Fecha must be set.
type BlockFields struct {
	DiaSemana     *int
	Fecha         *string
	HoraInicio    datatypes.Time
	HoraFin       datatypes.Time
	DuracionTurno int
	Cupo          int
}

type BlockService struct {
	repos *repository.Repositories
}

func NewBlockService(repos *repository.Repositories) *BlockService {
	return &BlockService{repos: repos}
}

// Create adds a block to a center
func (s *BlockService) Create(ctx context.Context, centerID, userID uint, f BlockFields) (*models.Block, error) {
	center, err := s.repos.Centers.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, lift(err, "center")
	}
	if f.DuracionTurno == 0 {
		f.DuracionTurno = models.DefaultSlotMinutes
	}
	if err := validateBlock(center, &f); err != nil {
		return nil, err
	}

	block := &models.Block{
		CenterID:      centerID,
		DiaSemana:     f.DiaSemana,
		Fecha:         f.Fecha,
		HoraInicio:    f.HoraInicio,
		HoraFin:       f.HoraFin,
		DuracionTurno: f.DuracionTurno,
		Cupo:          f.Cupo,
		Activo:        true,
	}
	if err := s.repos.Blocks.CreateBlock(ctx, block); err != nil {
		return nil, lift(err, "block")
	}

	_ = s.repos.Audit.CreateAuditLog(ctx, &userID, "block_create",
		fmt.Sprintf("Created block %d for center %s (ID: %d), %s-%s, cupo %d",
			block.ID, center.Nombre, center.ID, models.FormatClock(block.HoraInicio), models.FormatClock(block.HoraFin), block.Cupo))

	return block, nil
}

func validateBlock(center *models.Center, f *BlockFields) error {
	fields := map[string]string{}

	switch {
	case f.DiaSemana == nil && f.Fecha == nil:
		fields["dia_semana"] = "either dia_semana or fecha is required"
	case f.DiaSemana != nil && f.Fecha != nil:
		fields["dia_semana"] = "dia_semana and fecha are mutually exclusive"
	case f.DiaSemana != nil && (*f.DiaSemana < 0 || *f.DiaSemana > 6):
		fields["dia_semana"] = "must be between 0 (Sunday) and 6 (Saturday)"
	case f.Fecha != nil:
		day, err := time.Parse(models.DateLayout, *f.Fecha)
		if err != nil {
			fields["fecha"] = "must be a date in YYYY-MM-DD format"
		} else {
			normalized := day.Format(models.DateLayout)
			f.Fecha = &normalized
		}
	}

	if f.Cupo < 0 {
		fields["cupo"] = "must be at least 0"
	}
	if time.Duration(f.HoraInicio)%time.Minute != 0 {
		fields["hora_inicio"] = "must be a whole minute"
	}
	if f.HoraInicio >= f.HoraFin {
		fields["hora_fin"] = "end time must be after start time"
	} else if !center.IsOpenDuring(f.HoraInicio, f.HoraFin) {
		fields["hora_fin"] = fmt.Sprintf("block must fit the center opening hours %s-%s",
			models.FormatClock(center.Apertura), models.FormatClock(center.Cierre))
	}

	window := time.Duration(f.HoraFin - f.HoraInicio)
	slot := time.Duration(f.DuracionTurno) * time.Minute
	if f.DuracionTurno < 0 || (window > 0 && slot > window) {
		fields["duracion_turno"] = "must be positive and fit inside the block"
	}

	if len(fields) > 0 {
		return NewValidationError("invalid block", fields)
	}
	return nil
}

// List returns the active blocks of a center
func (s *BlockService) List(ctx context.Context, centerID uint) ([]models.Block, error) {
	if _, err := s.repos.Centers.GetCenterByID(ctx, centerID); err != nil {
		return nil, lift(err, "center")
	}
	blocks, err := s.repos.Blocks.GetBlocksByCenterID(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

// Get returns an active block
func (s *BlockService) Get(ctx context.Context, id uint) (*models.Block, error) {
	block, err := s.repos.Blocks.GetBlockByID(ctx, id)
	if err != nil {
		return nil, lift(err, "block")
	}
	return block, nil
}

// Deactivate soft deletes a block. Its reservations are kept.
func (s *BlockService) Deactivate(ctx context.Context, id, userID uint) error {
	block, err := s.repos.Blocks.GetBlockByID(ctx, id)
	if err != nil {
		return lift(err, "block")
	}
	if err := s.repos.Blocks.DeactivateBlock(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate block: %w", err)
	}

	_ = s.repos.Audit.CreateAuditLog(ctx, &userID, "block_deactivate",
		fmt.Sprintf("Deactivated block %d of center %d", block.ID, block.CenterID))
	return nil
}
