package schema

import (
	"time"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/service"
)

// ReservationIn is the body of a turno booking.
type ReservationIn struct {
	Fecha    string    `json:"fecha" binding:"required,datetime=2006-01-02"`
	Hora     string    `json:"hora" binding:"required"`
	BloqueID *FlexUint `json:"bloque_id"`
	Email    string    `json:"email" binding:"required,email,max=255"`
	Telefono string    `json:"telefono" binding:"required,number,max=30"`
	Nombre   string    `json:"nombre" binding:"omitempty,max=100"`
	Apellido string    `json:"apellido" binding:"omitempty,max=100"`
}

func (in ReservationIn) Selector() service.TurnoSelector {
	sel := service.TurnoSelector{Fecha: in.Fecha, Hora: in.Hora}
	if in.BloqueID != nil && *in.BloqueID > 0 {
		id := uint(*in.BloqueID)
		sel.BlockID = &id
	}
	return sel
}

func (in ReservationIn) Citizen() service.Citizen {
	return service.Citizen{
		Email:    in.Email,
		Telefono: in.Telefono,
		Nombre:   in.Nombre,
		Apellido: in.Apellido,
	}
}

type ReservationOut struct {
	Codigo    string    `json:"codigo"`
	CenterID  uint      `json:"centro_id"`
	BlockID   uint      `json:"bloque_id"`
	Fecha     string    `json:"fecha"`
	Hora      string    `json:"hora"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Nombre    string    `json:"nombre,omitempty"`
	Apellido  string    `json:"apellido,omitempty"`
	Centro    string    `json:"centro,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func DumpReservation(r *models.Reservation) ReservationOut {
	out := ReservationOut{
		Codigo:    r.Codigo,
		CenterID:  r.CenterID,
		BlockID:   r.BlockID,
		Fecha:     r.Fecha,
		Hora:      r.Hora,
		Email:     r.Email,
		Telefono:  r.Telefono,
		Nombre:    r.Nombre,
		Apellido:  r.Apellido,
		CreatedAt: r.CreatedAt,
	}
	if r.Center != nil {
		out.Centro = r.Center.Nombre
	}
	return out
}

type SlotOut struct {
	BloqueID   uint   `json:"bloque_id"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	HoraFin    string `json:"hora_fin"`
	Disponible int    `json:"disponibles"`
}

func DumpSlots(slots []service.AvailableSlot) []SlotOut {
	out := make([]SlotOut, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotOut{
			BloqueID:   s.BlockID,
			Fecha:      s.Fecha,
			Hora:       s.Hora,
			HoraFin:    s.HoraFin,
			Disponible: s.Remaining,
		})
	}
	return out
}
