package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"centros-turnos-api/internal/metrics"
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
	"centros-turnos-api/pkg/utils"

	"gorm.io/datatypes"
)

// AvailableSlot is a turno that still accepts reservations.
type AvailableSlot struct {
	BlockID   uint
	Fecha     string
	Hora      string
	HoraFin   string
	Remaining int
}

// TurnoSelector identifies the turno to book. BlockID is optional; without it
// the first covering block with capacity left is used.
type TurnoSelector struct {
	Fecha   string
	Hora    string
	BlockID *uint
}

// Citizen is the person booking a turno.
type Citizen struct {
	Email    string
	Telefono string
	Nombre   string
	Apellido string
}

type ReservationService struct {
	repos *repository.Repositories
	loc   *time.Location
	now   func() time.Time
}

func NewReservationService(repos *repository.Repositories, loc *time.Location) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{
		repos: repos,
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock replaces the clock used to reject past dates.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

func (s *ReservationService) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// clockNow is the current time of day in the service time zone.
func (s *ReservationService) clockNow() datatypes.Time {
	n := s.now().In(s.loc)
	return datatypes.NewTime(n.Hour(), n.Minute(), n.Second(), 0)
}

func (s *ReservationService) parseDay(fecha string) (time.Time, error) {
	day, err := models.ParseDate(fecha, s.loc)
	if err != nil {
		return time.Time{}, fieldError("fecha", "must be a date in YYYY-MM-DD format")
	}
	if day.Before(s.today()) {
		return time.Time{}, fieldError("fecha", "date is in the past")
	}
	return day, nil
}

// AvailableSlots lists the bookable turnos of a public center on one date,
// ordered by time and then block id. Full turnos are left out. The date is
// returned in its canonical YYYY-MM-DD form.
func (s *ReservationService) AvailableSlots(ctx context.Context, centerID uint, fecha string) (string, []AvailableSlot, error) {
	day, err := s.parseDay(fecha)
	if err != nil {
		return "", nil, err
	}
	fecha = day.Format(models.DateLayout)

	if _, err := s.repos.Centers.GetPublicCenterByID(ctx, centerID); err != nil {
		return "", nil, lift(err, "center")
	}

	blocks, err := s.repos.Blocks.GetBlocksForDate(ctx, centerID, day)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	counts, err := s.repos.Reservations.CountsForCenterDate(ctx, centerID, fecha)
	if err != nil {
		return "", nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	taken := make(map[string]int64, len(counts))
	for _, c := range counts {
		taken[slotKey(c.BlockID, c.Hora)] = c.Total
	}

	isToday := day.Equal(s.today())
	now := s.clockNow()

	slots := []AvailableSlot{}
	for _, b := range blocks {
		step := datatypes.Time(b.SlotDuration())
		for _, start := range b.Slots() {
			if isToday && start <= now {
				continue
			}
			hora := models.FormatClock(start)
			remaining := int64(b.Cupo) - taken[slotKey(b.ID, hora)]
			if remaining <= 0 {
				continue
			}
			slots = append(slots, AvailableSlot{
				BlockID:   b.ID,
				Fecha:     fecha,
				Hora:      hora,
				HoraFin:   models.FormatClock(start + step),
				Remaining: int(remaining),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Hora != slots[j].Hora {
			return slots[i].Hora < slots[j].Hora
		}
		return slots[i].BlockID < slots[j].BlockID
	})
	return fecha, slots, nil
}

func slotKey(blockID uint, hora string) string {
	return fmt.Sprintf("%d@%s", blockID, hora)
}

func validateCitizen(c *Citizen) error {
	c.Email = strings.TrimSpace(c.Email)
	c.Telefono = strings.TrimSpace(c.Telefono)
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Apellido = strings.TrimSpace(c.Apellido)

	fields := map[string]string{}
	if err := validate.Var(c.Email, "required,email"); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if !isDigits(c.Telefono) {
		fields["telefono"] = "must contain digits only"
	}
	if len(fields) > 0 {
		return NewValidationError("invalid citizen data", fields)
	}
	return nil
}

// errSlotFull moves the booking on to the next candidate block.
var errSlotFull = errors.New("slot full")

// seatAttempts bounds how often one block is retried after losing a seat to
// a concurrent insert.
const seatAttempts = 3

// Reserve books one seat of a turno. Every candidate block is tried in its
// own transaction that locks the center and the block before reading the
// booked seats; the unique seat index rejects anything that slips past it.
func (s *ReservationService) Reserve(ctx context.Context, centerID uint, sel TurnoSelector, citizen Citizen) (*models.Reservation, error) {
	reservation, err := s.reserve(ctx, centerID, sel, citizen)
	switch {
	case err == nil:
		metrics.ReservationAttempt(metrics.OutcomeCreated)
	case errors.Is(err, ErrConflict):
		metrics.ReservationAttempt(metrics.OutcomeFull)
	default:
		metrics.ReservationAttempt(metrics.OutcomeRejected)
	}
	return reservation, err
}

func (s *ReservationService) reserve(ctx context.Context, centerID uint, sel TurnoSelector, citizen Citizen) (*models.Reservation, error) {
	if err := validateCitizen(&citizen); err != nil {
		return nil, err
	}

	day, err := s.parseDay(sel.Fecha)
	if err != nil {
		return nil, err
	}
	at, err := models.ParseClock(sel.Hora)
	if err != nil {
		return nil, fieldError("hora", "must be a time in HH:MM format")
	}
	if day.Equal(s.today()) && at <= s.clockNow() {
		return nil, fieldError("hora", "time is in the past")
	}

	if _, err := s.repos.Centers.GetPublicCenterByID(ctx, centerID); err != nil {
		return nil, lift(err, "center")
	}

	candidates, err := s.candidateBlocks(ctx, centerID, sel.BlockID, day, at)
	if err != nil {
		return nil, err
	}

	fecha := day.Format(models.DateLayout)
	hora := models.FormatClock(at)
	reservation := &models.Reservation{
		CenterID: centerID,
		Fecha:    fecha,
		Hora:     hora,
		Email:    citizen.Email,
		Telefono: citizen.Telefono,
		Nombre:   citizen.Nombre,
		Apellido: citizen.Apellido,
	}

	for _, id := range candidates {
		err := s.book(ctx, id, centerID, reservation)
		if errors.Is(err, errSlotFull) {
			continue
		}
		if err != nil {
			return nil, err
		}

		_ = s.repos.Audit.CreateAuditLog(ctx, nil, "reservation_create",
			fmt.Sprintf("Reservation %s: center %d, block %d, %s %s, seat %d",
				reservation.Codigo, centerID, reservation.BlockID, fecha, hora, reservation.Cupo))
		return reservation, nil
	}
	return nil, conflict("turno %s %s is fully booked", fecha, hora)
}

// candidateBlocks returns the ids of the blocks offering a turno at day/at.
func (s *ReservationService) candidateBlocks(ctx context.Context, centerID uint, blockID *uint, day time.Time, at datatypes.Time) ([]uint, error) {
	if blockID != nil {
		block, err := s.repos.Blocks.GetBlockByID(ctx, *blockID)
		if err != nil {
			return nil, lift(err, "turno")
		}
		if block.CenterID != centerID || !block.AppliesTo(day) || !block.HasSlotAt(at) {
			return nil, notFound("turno not found")
		}
		return []uint{block.ID}, nil
	}

	blocks, err := s.repos.Blocks.GetBlocksForDate(ctx, centerID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	var ids []uint
	for _, b := range blocks {
		if b.HasSlotAt(at) {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil, notFound("turno not found")
	}
	return ids, nil
}

// book stores the reservation in a free seat of one block. It returns
// errSlotFull when the block has no seat left.
func (s *ReservationService) book(ctx context.Context, blockID, centerID uint, reservation *models.Reservation) error {
	for attempt := 0; attempt < seatAttempts; attempt++ {
		err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			return takeSeat(ctx, tx, blockID, centerID, reservation)
		})
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}
	return conflict("turno %s %s is fully booked", reservation.Fecha, reservation.Hora)
}

// takeSeat runs inside a transaction. Both locks are taken before the first
// plain read, so the seat list reflects every booking committed before them.
func takeSeat(ctx context.Context, tx *repository.Repositories, blockID, centerID uint, reservation *models.Reservation) error {
	if _, err := tx.Centers.LockPublicCenter(ctx, centerID); err != nil {
		return lift(err, "center")
	}
	block, err := tx.Blocks.LockBlock(ctx, blockID, centerID)
	if err != nil {
		return lift(err, "turno")
	}

	seats, err := tx.Reservations.TakenSeats(ctx, block.ID, reservation.Fecha, reservation.Hora)
	if err != nil {
		return fmt.Errorf("failed to read booked seats: %w", err)
	}
	seat := freeSeat(seats, block.Cupo)
	if seat == 0 {
		return errSlotFull
	}

	reservation.ID = 0
	reservation.Codigo = utils.NewReservationCode()
	reservation.BlockID = block.ID
	reservation.Cupo = seat
	if err := tx.Reservations.CreateReservation(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// freeSeat returns the lowest seat in 1..capacity missing from the ascending
// taken list, or 0 when every seat is booked.
func freeSeat(taken []int, capacity int) int {
	seat := 1
	for _, t := range taken {
		if t > seat {
			break
		}
		if t == seat {
			seat++
		}
	}
	if seat > capacity {
		return 0
	}
	return seat
}

// GetByCode returns a reservation by its confirmation code.
func (s *ReservationService) GetByCode(ctx context.Context, codigo string) (*models.Reservation, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if !utils.IsReservationCode(codigo) {
		return nil, fieldError("codigo", "malformed reservation code")
	}
	reservation, err := s.repos.Reservations.GetReservationByCode(ctx, codigo)
	if err != nil {
		return nil, lift(err, "reservation")
	}
	return reservation, nil
}
