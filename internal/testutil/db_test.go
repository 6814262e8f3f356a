package testutil

import (
	"testing"

	"centros-turnos-api/internal/models"
)

func TestSeedCenterKeepsFalseFlags(t *testing.T) {
	db := NewDB(t)
	m := SeedMunicipality(t, db, "La Plata")

	c := SeedCenter(t, db, m.ID, func(c *models.Center) {
		c.Publicado = false
		c.Activo = false
	})
	if !c.Aprobado || c.Publicado || c.Activo {
		t.Fatalf("unexpected returned flags %+v", c)
	}

	var stored models.Center
	if err := db.First(&stored, c.ID).Error; err != nil {
		t.Fatalf("load center: %v", err)
	}
	if !stored.Aprobado || stored.Publicado || stored.Activo {
		t.Fatalf("unexpected stored flags aprobado=%v publicado=%v activo=%v",
			stored.Aprobado, stored.Publicado, stored.Activo)
	}
}

func TestSeedBlockKeepsInactive(t *testing.T) {
	db := NewDB(t)
	m := SeedMunicipality(t, db, "La Plata")
	c := SeedCenter(t, db, m.ID, nil)

	b := SeedBlock(t, db, c.ID, func(b *models.Block) { b.Activo = false })
	if b.Activo {
		t.Fatal("returned block should be inactive")
	}

	var stored models.Block
	if err := db.First(&stored, b.ID).Error; err != nil {
		t.Fatalf("load block: %v", err)
	}
	if stored.Activo {
		t.Fatal("stored block should be inactive")
	}
}
