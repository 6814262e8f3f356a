package schema

import (
	"time"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/service"
)

// CenterIn is the body of a center registration.
type CenterIn struct {
	Nombre         string    `json:"nombre" binding:"required,max=255"`
	Direccion      string    `json:"direccion" binding:"required,max=255"`
	Telefono       string    `json:"telefono" binding:"required,number,max=30"`
	Apertura       string    `json:"apertura" binding:"required"`
	Cierre         string    `json:"cierre" binding:"required"`
	Tipo           string    `json:"tipo_centro" binding:"required,max=100"`
	Email          string    `json:"email" binding:"required,email,max=255"`
	Web            *string   `json:"web" binding:"omitempty,url,max=255"`
	Latitud        FlexFloat `json:"latitud" binding:"latitude"`
	Longitud       FlexFloat `json:"longitud" binding:"longitude"`
	MunicipalityID FlexUint  `json:"id_municipio" binding:"required"`
}

// Fields converts the body into service input.
func (in CenterIn) Fields() (service.CenterFields, error) {
	fields := map[string]string{}
	apertura, err := models.ParseClock(in.Apertura)
	if err != nil {
		fields["apertura"] = "must be a time in HH:MM format"
	}
	cierre, err := models.ParseClock(in.Cierre)
	if err != nil {
		fields["cierre"] = "must be a time in HH:MM format"
	}
	if len(fields) > 0 {
		return service.CenterFields{}, service.NewValidationError("invalid request body", fields)
	}

	return service.CenterFields{
		Nombre:         in.Nombre,
		Direccion:      in.Direccion,
		Telefono:       in.Telefono,
		Apertura:       apertura,
		Cierre:         cierre,
		Tipo:           in.Tipo,
		Email:          in.Email,
		Web:            in.Web,
		Latitud:        float64(in.Latitud),
		Longitud:       float64(in.Longitud),
		MunicipalityID: uint(in.MunicipalityID),
	}, nil
}

// CenterOut is the public view of a center.
type CenterOut struct {
	ID             uint    `json:"id"`
	Nombre         string  `json:"nombre"`
	Direccion      string  `json:"direccion"`
	Telefono       string  `json:"telefono"`
	Apertura       string  `json:"apertura"`
	Cierre         string  `json:"cierre"`
	Tipo           string  `json:"tipo_centro"`
	Email          string  `json:"email"`
	Web            *string `json:"web,omitempty"`
	Latitud        float64 `json:"latitud"`
	Longitud       float64 `json:"longitud"`
	MunicipalityID uint    `json:"id_municipio"`
	Municipio      string  `json:"municipio,omitempty"`
}

// AdminCenterOut adds the workflow flags and timestamps.
type AdminCenterOut struct {
	CenterOut
	Aprobado  bool      `json:"aprobado"`
	Publicado bool      `json:"publicado"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func DumpCenter(c *models.Center) CenterOut {
	out := CenterOut{
		ID:             c.ID,
		Nombre:         c.Nombre,
		Direccion:      c.Direccion,
		Telefono:       c.Telefono,
		Apertura:       models.FormatClock(c.Apertura),
		Cierre:         models.FormatClock(c.Cierre),
		Tipo:           c.Tipo,
		Email:          c.Email,
		Web:            c.Web,
		Latitud:        c.Latitud,
		Longitud:       c.Longitud,
		MunicipalityID: c.MunicipalityID,
	}
	if c.Municipality != nil {
		out.Municipio = c.Municipality.Nombre
	}
	return out
}

func DumpCenters(centers []models.Center) []CenterOut {
	out := make([]CenterOut, 0, len(centers))
	for i := range centers {
		out = append(out, DumpCenter(&centers[i]))
	}
	return out
}

func DumpAdminCenter(c *models.Center) AdminCenterOut {
	return AdminCenterOut{
		CenterOut: DumpCenter(c),
		Aprobado:  c.Aprobado,
		Publicado: c.Publicado,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func DumpAdminCenters(centers []models.Center) []AdminCenterOut {
	out := make([]AdminCenterOut, 0, len(centers))
	for i := range centers {
		out = append(out, DumpAdminCenter(&centers[i]))
	}
	return out
}

// CenterPageOut is a paginated center listing.
type CenterPageOut struct {
	Centros interface{} `json:"centros"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	PerPage int         `json:"per_page"`
	Total   int64       `json:"total"`
}

func DumpCenterPage(p *service.CenterPage, admin bool) CenterPageOut {
	out := CenterPageOut{
		Page:    p.Page,
		Pages:   p.Pages,
		PerPage: p.PerPage,
		Total:   p.Total,
	}
	if admin {
		out.Centros = DumpAdminCenters(p.Centers)
	} else {
		out.Centros = DumpCenters(p.Centers)
	}
	return out
}
