package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned (wrapped) when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned (wrapped) when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm errors onto the package sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s not found: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s already exists: %w", what, ErrDuplicate)
	default:
		return err
	}
}

// Repositories bundles every repository bound to one connection, or to one
// transaction when obtained through Transaction.
type Repositories struct {
	db *gorm.DB

	Users          *UserRepository
	UserCenters    *UserCenterRepository
	Municipalities *MunicipalityRepository
	Centers        *CenterRepository
	Blocks         *BlockRepository
	Reservations   *ReservationRepository
	Sites          *SiteRepository
	Audit          *AuditRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Users:          NewUserRepo(db),
		UserCenters:    NewUserCenterRepo(db),
		Municipalities: NewMunicipalityRepo(db),
		Centers:        NewCenterRepo(db),
		Blocks:         NewBlockRepo(db),
		Reservations:   NewReservationRepo(db),
		Sites:          NewSiteRepo(db),
		Audit:          NewAuditRepo(db),
	}
}

// Transaction runs fn inside a database transaction. The repositories handed
// to fn share the transaction; it commits when fn returns nil and rolls back
// otherwise (including on panic).
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that the underlying connection is alive.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
