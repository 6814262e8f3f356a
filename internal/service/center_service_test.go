package service

import (
	"context"
	"testing"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/testutil"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func validCenterFields(municipalityID uint) CenterFields {
	return CenterFields{
		Nombre:         "Hospital San Martín",
		Direccion:      "Calle 1 y 70",
		Telefono:       "2214000000",
		Apertura:       datatypes.NewTime(8, 0, 0, 0),
		Cierre:         datatypes.NewTime(20, 0, 0, 0),
		Tipo:           "hospital",
		Email:          "contacto@sanmartin.example.com",
		Latitud:        -34.92,
		Longitud:       -57.95,
		MunicipalityID: municipalityID,
	}
}

func countCenters(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Center{}).Count(&n).Error; err != nil {
		t.Fatalf("count centers: %v", err)
	}
	return n
}

func TestRegisterCenter_StartsPending(t *testing.T) {
	db, repos := newRepos(t)
	m := testutil.SeedMunicipality(t, db, "La Plata")
	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 10})

	c, err := svc.Register(context.Background(), validCenterFields(m.ID))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if c.ID == 0 || c.Aprobado || c.Publicado || !c.Activo {
		t.Fatalf("expected a pending active center, got %+v", c)
	}

	stored, err := repos.Centers.GetCenterByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetCenterByID: %v", err)
	}
	if stored.Aprobado || stored.Publicado || !stored.Activo {
		t.Fatalf("unexpected stored flags %+v", stored)
	}
}

func TestRegisterCenter_Validation(t *testing.T) {
	db, repos := newRepos(t)
	m := testutil.SeedMunicipality(t, db, "La Plata")
	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 10})
	ctx := context.Background()

	cases := map[string]func(f *CenterFields){
		"opening equals closing": func(f *CenterFields) { f.Cierre = f.Apertura },
		"opening after closing":  func(f *CenterFields) { f.Apertura, f.Cierre = f.Cierre, f.Apertura },
		"phone with dashes":      func(f *CenterFields) { f.Telefono = "221-400-0000" },
		"phone with letters":     func(f *CenterFields) { f.Telefono = "abc" },
		"missing name":           func(f *CenterFields) { f.Nombre = "  " },
		"bad email":              func(f *CenterFields) { f.Email = "sin-arroba" },
		"unknown municipality":   func(f *CenterFields) { f.MunicipalityID = 9999 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validCenterFields(m.ID)
			mutate(&f)
			_, err := svc.Register(ctx, f)
			assertKind(t, err, ErrValidation)
		})
	}

	if n := countCenters(t, db); n != 0 {
		t.Fatalf("invalid registrations must not persist rows, found %d", n)
	}
}

func TestRegisterCenter_DuplicateAmongActive(t *testing.T) {
	db, repos := newRepos(t)
	m := testutil.SeedMunicipality(t, db, "La Plata")
	other := testutil.SeedMunicipality(t, db, "Berisso")
	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 10})
	ctx := context.Background()

	first, err := svc.Register(ctx, validCenterFields(m.ID))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Register(ctx, validCenterFields(m.ID))
	assertKind(t, err, ErrConflict)

	if _, err := svc.Register(ctx, validCenterFields(other.ID)); err != nil {
		t.Fatalf("same name in another municipality must be accepted: %v", err)
	}

	if _, err := svc.Deactivate(ctx, first.ID, 1); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := svc.Register(ctx, validCenterFields(m.ID)); err != nil {
		t.Fatalf("deactivated center must not block registration: %v", err)
	}
}

func TestCenterTransitionsAreIdempotent(t *testing.T) {
	db, repos := newRepos(t)
	m := testutil.SeedMunicipality(t, db, "La Plata")
	c := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Aprobado = false; c.Publicado = false })
	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 10})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := svc.Approve(ctx, c.ID, 1)
		if err != nil || !got.Aprobado {
			t.Fatalf("Approve #%d: %+v, %v", i, got, err)
		}
		got, err = svc.Publish(ctx, c.ID, 1)
		if err != nil || !got.Publicado {
			t.Fatalf("Publish #%d: %+v, %v", i, got, err)
		}
	}

	if _, err := svc.GetPublic(ctx, c.ID); err != nil {
		t.Fatalf("approved and published center must be public: %v", err)
	}

	got, err := svc.Unpublish(ctx, c.ID, 1)
	if err != nil || got.Publicado {
		t.Fatalf("Unpublish: %+v, %v", got, err)
	}
	_, err = svc.GetPublic(ctx, c.ID)
	assertKind(t, err, ErrNotFound)

	logs, err := repos.Audit.GetAuditLogsByAction(ctx, "center_approve", 10)
	if err != nil {
		t.Fatalf("GetAuditLogsByAction: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("a repeated approval must not be audited twice, got %d entries", len(logs))
	}

	_, err = svc.Approve(ctx, 9999, 1)
	assertKind(t, err, ErrNotFound)
}

func TestListCenters_Pagination(t *testing.T) {
	db, repos := newRepos(t)
	m := testutil.SeedMunicipality(t, db, "La Plata")
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		name := name
		testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = name })
	}
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "Z"; c.Aprobado = false })

	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 2})
	ctx := context.Background()

	page, err := svc.ListPublic(ctx, "3")
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if page.Pages != 3 || page.PerPage != 2 || page.Total != 5 || len(page.Centers) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}

	page, err = svc.ListPublic(ctx, "")
	if err != nil {
		t.Fatalf("ListPublic default page: %v", err)
	}
	if page.Page != 1 || len(page.Centers) != 2 || page.Centers[0].Nombre != "A" {
		t.Fatalf("unexpected first page %+v", page)
	}

	for _, raw := range []string{"abc", "0", "-1", "4", "1.5"} {
		_, err := svc.ListPublic(ctx, raw)
		assertKind(t, err, ErrValidation)
	}

	all, err := svc.ListAll(ctx, "1")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all.Total != 6 || all.Pages != 3 {
		t.Fatalf("admin listing must include pending centers, got %+v", all)
	}
}

func TestListCenters_EmptyIsNotFound(t *testing.T) {
	_, repos := newRepos(t)
	svc := NewCenterService(repos, models.SiteConfig{ElementosPorPagina: 10})
	ctx := context.Background()

	_, err := svc.ListPublic(ctx, "1")
	assertKind(t, err, ErrNotFound)
	_, err = svc.AllPublic(ctx)
	assertKind(t, err, ErrNotFound)

	tipos, err := svc.Types(ctx)
	if err != nil || len(tipos) != 0 {
		t.Fatalf("Types on empty table: %v, %v", tipos, err)
	}
}
