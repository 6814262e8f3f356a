package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCenterRepository_PublicScope(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")

	public := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "A" })
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "B"; c.Publicado = false })
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "C"; c.Activo = false })

	repo := NewCenterRepo(db)

	centers, total, err := repo.ListPublicCenters(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPublicCenters: %v", err)
	}
	if total != 1 || len(centers) != 1 || centers[0].ID != public.ID {
		t.Fatalf("expected only the public center, got total=%d centers=%v", total, centers)
	}
	if centers[0].Municipality == nil || centers[0].Municipality.Nombre != "La Plata" {
		t.Fatalf("expected municipality to be preloaded")
	}

	_, total, err = repo.ListAllCenters(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListAllCenters: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 centers in admin listing, got %d", total)
	}

	if _, err := repo.GetPublicCenterByID(ctx, public.ID+1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpublished center, got %v", err)
	}
}

func TestCenterRepository_ListPagesAreBounded(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "Berisso")
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		name := name
		testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = name })
	}

	repo := NewCenterRepo(db)
	page, total, err := repo.ListPublicCenters(ctx, 2, 4)
	if err != nil {
		t.Fatalf("ListPublicCenters: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page) != 1 || page[0].Nombre != "E" {
		t.Fatalf("expected last page with E, got %v", page)
	}
}

func TestCenterRepository_ExistsActiveCenterIgnoresInactive(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "Ensenada")
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "Viejo"; c.Activo = false })
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "Nuevo" })

	repo := NewCenterRepo(db)

	exists, err := repo.ExistsActiveCenter(ctx, "Viejo", "Calle 1 y 60", m.ID)
	if err != nil || exists {
		t.Fatalf("inactive center must not count as duplicate (exists=%v err=%v)", exists, err)
	}
	exists, err = repo.ExistsActiveCenter(ctx, "Nuevo", "Calle 1 y 60", m.ID)
	if err != nil || !exists {
		t.Fatalf("expected active duplicate (exists=%v err=%v)", exists, err)
	}
}

func TestCenterRepository_GetCenterTypes(t *testing.T) {
	db := testutil.NewDB(t)
	m := testutil.SeedMunicipality(t, db, "Quilmes")
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "1"; c.Tipo = "hospital" })
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "2"; c.Tipo = "hospital" })
	testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "3"; c.Tipo = "escuela" })

	tipos, err := NewCenterRepo(db).GetCenterTypes(context.Background())
	if err != nil {
		t.Fatalf("GetCenterTypes: %v", err)
	}
	if len(tipos) != 2 || tipos[0] != "escuela" || tipos[1] != "hospital" {
		t.Fatalf("unexpected types: %v", tipos)
	}
}

func TestCenterRepository_GetCenterTypesPropagatesErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	mock.ExpectQuery("SELECT DISTINCT .*tipo.* FROM .centers.").WillReturnError(errors.New("server has gone away"))

	if _, err := NewCenterRepo(db).GetCenterTypes(context.Background()); err == nil {
		t.Fatal("expected driver error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCenterRepository_LockPublicCenter(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")
	public := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "A" })
	inactive := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "B"; c.Activo = false })

	repo := NewCenterRepo(db)
	got, err := repo.LockPublicCenter(ctx, public.ID)
	if err != nil {
		t.Fatalf("LockPublicCenter: %v", err)
	}
	if got.ID != public.ID {
		t.Fatalf("expected center %d, got %d", public.ID, got.ID)
	}
	if _, err := repo.LockPublicCenter(ctx, inactive.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive center, got %v", err)
	}
}

func TestBlockRepository_GetBlocksForDate(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")
	c := testutil.SeedCenter(t, db, m.ID, nil)

	monday := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	weekly := testutil.SeedBlock(t, db, c.ID, nil)
	dated := testutil.SeedBlock(t, db, c.ID, func(b *models.Block) {
		fecha := "2030-01-07"
		b.DiaSemana = nil
		b.Fecha = &fecha
	})
	testutil.SeedBlock(t, db, c.ID, func(b *models.Block) {
		tuesday := 2
		b.DiaSemana = &tuesday
	})
	testutil.SeedBlock(t, db, c.ID, func(b *models.Block) { b.Activo = false })

	blocks, err := NewBlockRepo(db).GetBlocksForDate(ctx, c.ID, monday)
	if err != nil {
		t.Fatalf("GetBlocksForDate: %v", err)
	}
	if len(blocks) != 2 || blocks[0].ID != weekly.ID || blocks[1].ID != dated.ID {
		t.Fatalf("expected weekly and dated blocks, got %+v", blocks)
	}
}

func TestReservationRepository_DuplicateSeat(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")
	c := testutil.SeedCenter(t, db, m.ID, nil)
	b := testutil.SeedBlock(t, db, c.ID, nil)
	testutil.SeedReservation(t, db, b, "2030-01-07", "09:00", 1)

	err := NewReservationRepo(db).CreateReservation(ctx, &models.Reservation{
		Codigo:   "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		CenterID: c.ID,
		BlockID:  b.ID,
		Fecha:    "2030-01-07",
		Hora:     "09:00",
		Cupo:     1,
		Email:    "otro@example.com",
		Telefono: "221",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same seat, got %v", err)
	}
}

func TestReservationRepository_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")
	c := testutil.SeedCenter(t, db, m.ID, nil)
	b := testutil.SeedBlock(t, db, c.ID, func(b *models.Block) { b.Cupo = 3 })
	testutil.SeedReservation(t, db, b, "2030-01-07", "09:00", 1)
	testutil.SeedReservation(t, db, b, "2030-01-07", "09:00", 2)
	testutil.SeedReservation(t, db, b, "2030-01-07", "10:00", 1)
	testutil.SeedReservation(t, db, b, "2030-01-14", "09:00", 1)

	repo := NewReservationRepo(db)

	seats, err := repo.TakenSeats(ctx, b.ID, "2030-01-07", "09:00")
	if err != nil || len(seats) != 2 || seats[0] != 1 || seats[1] != 2 {
		t.Fatalf("TakenSeats = %v, %v; want [1 2]", seats, err)
	}
	seats, err = repo.TakenSeats(ctx, b.ID, "2030-01-21", "09:00")
	if err != nil || len(seats) != 0 {
		t.Fatalf("TakenSeats on an empty turno = %v, %v", seats, err)
	}

	counts, err := repo.CountsForCenterDate(ctx, c.ID, "2030-01-07")
	if err != nil {
		t.Fatalf("CountsForCenterDate: %v", err)
	}
	got := map[string]int64{}
	for _, sc := range counts {
		got[sc.Hora] = sc.Total
	}
	if len(got) != 2 || got["09:00"] != 2 || got["10:00"] != 1 {
		t.Fatalf("unexpected slot counts: %+v", counts)
	}
}

func TestReservationRepository_TopMunicipalitiesTieBreak(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	m1 := testutil.SeedMunicipality(t, db, "M1")
	m2 := testutil.SeedMunicipality(t, db, "M2")
	m3 := testutil.SeedMunicipality(t, db, "M3")

	seed := func(m *models.Municipality, n int) {
		c := testutil.SeedCenter(t, db, m.ID, nil)
		b := testutil.SeedBlock(t, db, c.ID, func(b *models.Block) { b.Cupo = 10 })
		for i := 1; i <= n; i++ {
			testutil.SeedReservation(t, db, b, "2030-01-07", "09:00", i)
		}
	}
	// M2 is seeded first so insertion order cannot explain the result.
	seed(m2, 5)
	seed(m1, 5)
	seed(m3, 1)

	top, err := NewReservationRepo(db).TopMunicipalities(ctx, 2)
	if err != nil {
		t.Fatalf("TopMunicipalities: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].MunicipalityID != m1.ID || top[1].MunicipalityID != m2.ID {
		t.Fatalf("expected [M1, M2], got %+v", top)
	}
	if top[0].Total != 5 || top[1].Total != 5 {
		t.Fatalf("unexpected totals: %+v", top)
	}
}

func TestReservationRepository_CountByCenterTypeRange(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := testutil.SeedMunicipality(t, db, "La Plata")
	hosp := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "H"; c.Tipo = "hospital" })
	esc := testutil.SeedCenter(t, db, m.ID, func(c *models.Center) { c.Nombre = "E"; c.Tipo = "escuela" })
	bh := testutil.SeedBlock(t, db, hosp.ID, func(b *models.Block) { b.Cupo = 5 })
	be := testutil.SeedBlock(t, db, esc.ID, func(b *models.Block) { b.Cupo = 5 })

	testutil.SeedReservation(t, db, bh, "2030-01-01", "09:00", 1)
	testutil.SeedReservation(t, db, bh, "2030-01-31", "09:00", 1)
	testutil.SeedReservation(t, db, bh, "2030-02-01", "09:00", 1)
	testutil.SeedReservation(t, db, be, "2030-01-15", "09:00", 1)

	rows, err := NewReservationRepo(db).CountByCenterType(ctx, "2030-01-01", "2030-01-31")
	if err != nil {
		t.Fatalf("CountByCenterType: %v", err)
	}
	got := map[string]int64{}
	for _, r := range rows {
		got[r.Tipo] = r.Total
	}
	if got["hospital"] != 2 || got["escuela"] != 1 || len(got) != 2 {
		t.Fatalf("unexpected counts: %+v", rows)
	}
}

func TestRepositories_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repos := New(db)

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Municipalities.CreateMunicipality(ctx, &models.Municipality{Nombre: "Temporal"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	all, err := repos.Municipalities.GetAllMunicipalities(ctx)
	if err != nil {
		t.Fatalf("GetAllMunicipalities: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected rollback, found %v", all)
	}
}

func TestSiteRepository_GetOrCreateIsSingleton(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewSiteRepo(db)

	first, err := repo.GetOrCreateSiteConfig(ctx, &models.SiteConfig{Titulo: "Sitio", ElementosPorPagina: 5, Habilitado: true})
	if err != nil {
		t.Fatalf("GetOrCreateSiteConfig: %v", err)
	}
	second, err := repo.GetOrCreateSiteConfig(ctx, &models.SiteConfig{Titulo: "Otro", ElementosPorPagina: 20})
	if err != nil {
		t.Fatalf("GetOrCreateSiteConfig: %v", err)
	}
	if first.ID != second.ID || second.Titulo != "Sitio" || second.ElementosPorPagina != 5 {
		t.Fatalf("expected the first row to be kept, got %+v", second)
	}
}
