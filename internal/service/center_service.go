package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"centros-turnos-api/internal/metrics"
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"

	"gorm.io/datatypes"
)

// CenterFields carries the data of a center registration request.
type CenterFields struct {
	Nombre         string
	Direccion      string
	Telefono       string
	Apertura       datatypes.Time
	Cierre         datatypes.Time
	Tipo           string
	Email          string
	Web            *string
	Latitud        float64
	Longitud       float64
	MunicipalityID uint
}

// CenterPage is one page of a center listing.
type CenterPage struct {
	Centers []models.Center
	Page    int
	Pages   int
	PerPage int
	Total   int64
}

type CenterService struct {
	repos *repository.Repositories
	site  models.SiteConfig
}

func NewCenterService(repos *repository.Repositories, site models.SiteConfig) *CenterService {
	return &CenterService{
		repos: repos,
		site:  site,
	}
}

// Register creates a center pending approval. The duplicate check and the
// insert run in one transaction holding the municipality row lock.
func (s *CenterService) Register(ctx context.Context, f CenterFields) (*models.Center, error) {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Direccion = strings.TrimSpace(f.Direccion)
	f.Telefono = strings.TrimSpace(f.Telefono)
	f.Tipo = strings.TrimSpace(f.Tipo)
	f.Email = strings.TrimSpace(f.Email)

	if err := validateCenter(f); err != nil {
		return nil, err
	}

	center := &models.Center{
		Nombre:         f.Nombre,
		Direccion:      f.Direccion,
		Telefono:       f.Telefono,
		Apertura:       f.Apertura,
		Cierre:         f.Cierre,
		Tipo:           f.Tipo,
		Email:          f.Email,
		Web:            f.Web,
		Latitud:        f.Latitud,
		Longitud:       f.Longitud,
		MunicipalityID: f.MunicipalityID,
		Activo:         true,
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		municipality, err := tx.Municipalities.LockMunicipality(ctx, f.MunicipalityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fieldError("id_municipio", "municipality does not exist")
			}
			return fmt.Errorf("lock municipality: %w", err)
		}

		exists, err := tx.Centers.ExistsActiveCenter(ctx, f.Nombre, f.Direccion, f.MunicipalityID)
		if err != nil {
			return fmt.Errorf("check duplicate center: %w", err)
		}
		if exists {
			return conflict("an active center named %q already exists at %q in %s", f.Nombre, f.Direccion, municipality.Nombre)
		}

		if err := tx.Centers.CreateCenter(ctx, center); err != nil {
			return lift(err, "center")
		}
		center.Municipality = municipality
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CenterRegistered()
	_ = s.repos.Audit.CreateAuditLog(ctx, nil, "center_register",
		fmt.Sprintf("Registered center: %s (ID: %d)", center.Nombre, center.ID))

	return center, nil
}

func validateCenter(f CenterFields) error {
	fields := map[string]string{}
	if f.Nombre == "" {
		fields["nombre"] = "this field is required"
	}
	if f.Direccion == "" {
		fields["direccion"] = "this field is required"
	}
	if f.Tipo == "" {
		fields["tipo_centro"] = "this field is required"
	}
	if err := validate.Var(f.Email, "required,email"); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if !isDigits(f.Telefono) {
		fields["telefono"] = "must contain digits only"
	}
	if f.MunicipalityID == 0 {
		fields["id_municipio"] = "this field is required"
	}
	if f.Apertura >= f.Cierre {
		fields["cierre"] = "closing time must be after opening time"
	}
	if len(fields) > 0 {
		return NewValidationError("invalid center", fields)
	}
	return nil
}

func (s *CenterService) Approve(ctx context.Context, id, userID uint) (*models.Center, error) {
	return s.setFlag(ctx, id, userID, "aprobado", true, "center_approve")
}

func (s *CenterService) Publish(ctx context.Context, id, userID uint) (*models.Center, error) {
	return s.setFlag(ctx, id, userID, "publicado", true, "center_publish")
}

func (s *CenterService) Unpublish(ctx context.Context, id, userID uint) (*models.Center, error) {
	return s.setFlag(ctx, id, userID, "publicado", false, "center_unpublish")
}

// Deactivate soft deletes a center. Its blocks and reservations are kept.
func (s *CenterService) Deactivate(ctx context.Context, id, userID uint) (*models.Center, error) {
	return s.setFlag(ctx, id, userID, "activo", false, "center_deactivate")
}

// setFlag applies one workflow transition. Setting a flag to the value it
// already holds succeeds without writing.
func (s *CenterService) setFlag(ctx context.Context, id, userID uint, column string, value bool, action string) (*models.Center, error) {
	center, err := s.repos.Centers.GetCenterByID(ctx, id)
	if err != nil {
		return nil, lift(err, "center")
	}

	current := map[string]*bool{
		"aprobado":  &center.Aprobado,
		"publicado": &center.Publicado,
		"activo":    &center.Activo,
	}[column]
	if *current == value {
		return center, nil
	}

	if err := s.repos.Centers.UpdateCenterFlag(ctx, id, column, value); err != nil {
		return nil, fmt.Errorf("failed to update center: %w", err)
	}
	*current = value

	_ = s.repos.Audit.CreateAuditLog(ctx, &userID, action,
		fmt.Sprintf("Center %s (ID: %d): %s=%t", center.Nombre, center.ID, column, value))

	return center, nil
}

// ListPublic returns one page of approved, published and active centers.
func (s *CenterService) ListPublic(ctx context.Context, rawPage string) (*CenterPage, error) {
	return s.list(ctx, rawPage, s.repos.Centers.ListPublicCenters)
}

// ListAll returns one page of every center, for administrators.
func (s *CenterService) ListAll(ctx context.Context, rawPage string) (*CenterPage, error) {
	return s.list(ctx, rawPage, s.repos.Centers.ListAllCenters)
}

type pageFunc func(ctx context.Context, limit, offset int) ([]models.Center, int64, error)

func (s *CenterService) list(ctx context.Context, rawPage string, fetch pageFunc) (*CenterPage, error) {
	page, err := parsePage(rawPage)
	if err != nil {
		return nil, err
	}

	perPage := s.site.PageSize()
	centers, total, err := fetch(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}
	if total == 0 {
		return nil, notFound("no centers found")
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if page > pages {
		return nil, fieldError("page", fmt.Sprintf("page must be between 1 and %d", pages))
	}

	return &CenterPage{
		Centers: centers,
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
	}, nil
}

func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError("page", "page must be a number")
	}
	if page < 1 {
		return 0, fieldError("page", "page must be at least 1")
	}
	return page, nil
}

// AllPublic returns every public center without pagination.
func (s *CenterService) AllPublic(ctx context.Context) ([]models.Center, error) {
	centers, err := s.repos.Centers.GetAllPublicCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}
	if len(centers) == 0 {
		return nil, notFound("no centers found")
	}
	return centers, nil
}

// GetPublic returns a center only when it is visible through the public API.
func (s *CenterService) GetPublic(ctx context.Context, id uint) (*models.Center, error) {
	center, err := s.repos.Centers.GetPublicCenterByID(ctx, id)
	if err != nil {
		return nil, lift(err, "center")
	}
	return center, nil
}

// Get returns any center regardless of its workflow state.
func (s *CenterService) Get(ctx context.Context, id uint) (*models.Center, error) {
	center, err := s.repos.Centers.GetCenterByID(ctx, id)
	if err != nil {
		return nil, lift(err, "center")
	}
	return center, nil
}

// Types returns the distinct types of active centers.
func (s *CenterService) Types(ctx context.Context) ([]string, error) {
	tipos, err := s.repos.Centers.GetCenterTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list center types: %w", err)
	}
	return tipos, nil
}
