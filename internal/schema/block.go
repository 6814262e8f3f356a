package schema

import (
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/service"
)

// BlockIn is the body of a block creation. Exactly one of dia_semana and
// fecha is expected; the service enforces it.
type BlockIn struct {
	DiaSemana     *FlexInt `json:"dia_semana" binding:"omitempty,min=0,max=6"`
	Fecha         *string  `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
	HoraInicio    string   `json:"hora_inicio" binding:"required"`
	HoraFin       string   `json:"hora_fin" binding:"required"`
	DuracionTurno FlexInt  `json:"duracion_turno" binding:"omitempty,min=1,max=1440"`
	Cupo          FlexInt  `json:"cupo" binding:"min=0"`
}

func (in BlockIn) Fields() (service.BlockFields, error) {
	fields := map[string]string{}
	inicio, err := models.ParseClock(in.HoraInicio)
	if err != nil {
		fields["hora_inicio"] = "must be a time in HH:MM format"
	}
	fin, err := models.ParseClock(in.HoraFin)
	if err != nil {
		fields["hora_fin"] = "must be a time in HH:MM format"
	}
	if len(fields) > 0 {
		return service.BlockFields{}, service.NewValidationError("invalid request body", fields)
	}

	out := service.BlockFields{
		Fecha:         in.Fecha,
		HoraInicio:    inicio,
		HoraFin:       fin,
		DuracionTurno: int(in.DuracionTurno),
		Cupo:          int(in.Cupo),
	}
	if in.DiaSemana != nil {
		day := int(*in.DiaSemana)
		out.DiaSemana = &day
	}
	return out, nil
}

type BlockOut struct {
	ID            uint    `json:"id"`
	CenterID      uint    `json:"centro_id"`
	DiaSemana     *int    `json:"dia_semana,omitempty"`
	Fecha         *string `json:"fecha,omitempty"`
	HoraInicio    string  `json:"hora_inicio"`
	HoraFin       string  `json:"hora_fin"`
	DuracionTurno int     `json:"duracion_turno"`
	Cupo          int     `json:"cupo"`
}

func DumpBlock(b *models.Block) BlockOut {
	return BlockOut{
		ID:            b.ID,
		CenterID:      b.CenterID,
		DiaSemana:     b.DiaSemana,
		Fecha:         b.Fecha,
		HoraInicio:    models.FormatClock(b.HoraInicio),
		HoraFin:       models.FormatClock(b.HoraFin),
		DuracionTurno: b.DuracionTurno,
		Cupo:          b.Cupo,
	}
}

func DumpBlocks(blocks []models.Block) []BlockOut {
	out := make([]BlockOut, 0, len(blocks))
	for i := range blocks {
		out = append(out, DumpBlock(&blocks[i]))
	}
	return out
}
