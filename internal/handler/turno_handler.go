package handler

import (
	"net/http"
	"strconv"
	"strings"

	"centros-turnos-api/internal/schema"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TurnoHandler struct {
	reservationService *service.ReservationService
}

func NewTurnoHandler(reservationService *service.ReservationService) *TurnoHandler {
	return &TurnoHandler{
		reservationService: reservationService,
	}
}

// AvailableTurnos lists the bookable turnos of a center on ?fecha=
func (h *TurnoHandler) AvailableTurnos(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		utils.ValidationErrorResponse(c, "fecha is required", map[string]string{"fecha": "this field is required"})
		return
	}

	fecha, slots, err := h.reservationService.AvailableSlots(c.Request.Context(), id, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"centro_id": id,
		"fecha":     fecha,
		"turnos":    schema.DumpSlots(slots),
	})
}

// Reserve books a turno of a center
func (h *TurnoHandler) Reserve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req schema.ReservationIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	reservation, err := h.reservationService.Reserve(c.Request.Context(), id, req.Selector(), req.Citizen())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{"reserva": schema.DumpReservation(reservation)})
}

// GetReservation looks a reservation up by its confirmation code
func (h *TurnoHandler) GetReservation(c *gin.Context) {
	reservation, err := h.reservationService.GetByCode(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"reserva": schema.DumpReservation(reservation)})
}

// TopMunicipalities ranks municipalities by reservations
func (h *TurnoHandler) TopMunicipalities(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		utils.ValidationErrorResponse(c, "n must be a number", map[string]string{"n": "must be a positive number"})
		return
	}
	rows, err := h.reservationService.TopMunicipalities(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"municipios": rows})
}

// ReservationsByType counts reservations per center type. The range comes
// in the path as "fecha_inicio=YYYY-MM-DD,fecha_fin=YYYY-MM-DD".
func (h *TurnoHandler) ReservationsByType(c *gin.Context) {
	start, end, ok := parseRange(c.Param("rango"))
	if !ok {
		utils.ValidationErrorResponse(c, "expected fecha_inicio=YYYY-MM-DD,fecha_fin=YYYY-MM-DD", nil)
		return
	}

	counts, err := h.reservationService.ReservationsByType(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"desde": start,
		"hasta": end,
		"tipos": counts,
	})
}

func parseRange(raw string) (start, end string, ok bool) {
	for _, part := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return "", "", false
		}
		switch key {
		case "fecha_inicio":
			start = value
		case "fecha_fin":
			end = value
		default:
			return "", "", false
		}
	}
	return start, end, start != "" && end != ""
}
