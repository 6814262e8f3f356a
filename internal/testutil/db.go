// Package testutil provides sqlite-backed fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"centros-turnos-api/internal/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database. The pool is pinned to a
// single connection so every query sees the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func SeedMunicipality(t testing.TB, db *gorm.DB, nombre string) *models.Municipality {
	t.Helper()
	m := &models.Municipality{Nombre: nombre}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed municipality: %v", err)
	}
	return m
}

// SeedCenter stores a public center open 08:00-18:00. mutate may adjust any
// field before insertion, including the workflow flags.
func SeedCenter(t testing.TB, db *gorm.DB, municipalityID uint, mutate func(*models.Center)) *models.Center {
	t.Helper()
	c := &models.Center{
		Nombre:         fmt.Sprintf("Centro %d", municipalityID),
		Direccion:      "Calle 1 y 60",
		Telefono:       "2214000000",
		Apertura:       datatypes.NewTime(8, 0, 0, 0),
		Cierre:         datatypes.NewTime(18, 0, 0, 0),
		Tipo:           "vacunatorio",
		Email:          "centro@example.com",
		MunicipalityID: municipalityID,
		Aprobado:       true,
		Publicado:      true,
		Activo:         true,
	}
	if mutate != nil {
		mutate(c)
	}
	// zero-valued booleans take the column default on insert and RETURNING
	// copies it back, so the requested flags are kept aside and reapplied
	flags := map[string]interface{}{
		"aprobado":  c.Aprobado,
		"publicado": c.Publicado,
		"activo":    c.Activo,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed center: %v", err)
	}
	if err := db.Model(c).Updates(flags).Error; err != nil {
		t.Fatalf("seed center flags: %v", err)
	}
	c.Aprobado = flags["aprobado"].(bool)
	c.Publicado = flags["publicado"].(bool)
	c.Activo = flags["activo"].(bool)
	return c
}

// SeedBlock stores a block of one turno per 30 minutes between 09:00 and
// 12:00, recurring on Mondays, with capacity 1.
func SeedBlock(t testing.TB, db *gorm.DB, centerID uint, mutate func(*models.Block)) *models.Block {
	t.Helper()
	monday := 1
	b := &models.Block{
		CenterID:      centerID,
		DiaSemana:     &monday,
		HoraInicio:    datatypes.NewTime(9, 0, 0, 0),
		HoraFin:       datatypes.NewTime(12, 0, 0, 0),
		DuracionTurno: 30,
		Cupo:          1,
		Activo:        true,
	}
	if mutate != nil {
		mutate(b)
	}
	activo := b.Activo
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed block: %v", err)
	}
	if !activo {
		if err := db.Model(b).Update("activo", false).Error; err != nil {
			t.Fatalf("seed block flags: %v", err)
		}
		b.Activo = false
	}
	return b
}

var seedSeq int

// SeedReservation stores a reservation for one seat of a turno.
func SeedReservation(t testing.TB, db *gorm.DB, block *models.Block, fecha, hora string, cupo int) *models.Reservation {
	t.Helper()
	seedSeq++
	r := &models.Reservation{
		Codigo:   fmt.Sprintf("SEED%022d", seedSeq),
		CenterID: block.CenterID,
		BlockID:  block.ID,
		Fecha:    fecha,
		Hora:     hora,
		Cupo:     cupo,
		Email:    "vecino@example.com",
		Telefono: "2215000000",
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return r
}
