package service

import (
	"context"
	"log"
	"time"

	"centros-turnos-api/internal/repository"
)

// WorkerService periodically purges refresh tokens that can no longer be used.
type WorkerService struct {
	userRepo *repository.UserRepository
	interval time.Duration
	now      func() time.Time
}

func NewWorkerService(userRepo *repository.UserRepository, interval time.Duration) *WorkerService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &WorkerService{
		userRepo: userRepo,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the cleanup loop until ctx is cancelled
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Background worker started - purging refresh tokens every %s", w.interval)

	w.PurgeRefreshTokens(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("Background worker stopped")
			return
		case <-ticker.C:
			w.PurgeRefreshTokens(ctx)
		}
	}
}

// PurgeRefreshTokens deletes expired tokens and tokens revoked before now
func (w *WorkerService) PurgeRefreshTokens(ctx context.Context) int64 {
	deleted, err := w.userRepo.DeleteStaleRefreshTokens(ctx, w.now())
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Error purging refresh tokens: %v", err)
		}
		return 0
	}
	if deleted > 0 {
		log.Printf("Purged %d stale refresh tokens", deleted)
	}
	return deleted
}
