package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"centros-turnos-api/internal/config"
	"centros-turnos-api/internal/database"
	"centros-turnos-api/internal/handler"
	"centros-turnos-api/internal/metrics"
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 4. Initialize repositories
	repos := repository.New(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Site configuration and first administrator
	site, err := service.NewSiteService(repos).EnsureDefault(ctx, cfg.Site)
	if err != nil {
		log.Fatalf("Failed to load site configuration: %v", err)
	}

	authService := service.NewAuthService(repos.Users, repos.Audit)
	created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	if created {
		log.Printf("Admin account %q created", cfg.Admin.Username)
	}

	// 6. Initialize services
	services := handler.Services{
		Auth:           authService,
		Centers:        service.NewCenterService(repos, site),
		Blocks:         service.NewBlockService(repos),
		Reservations:   service.NewReservationService(repos, cfg.Location()),
		Municipalities: service.NewMunicipalityService(repos),
		Operators:      service.NewOperatorService(repos),
		Site:           site,
	}

	// 7. Start background worker in goroutine
	workerService := service.NewWorkerService(repos.Users, cfg.JWT.CleanupInterval)
	go workerService.Start(ctx)

	// 8. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	metrics.Init()

	r := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		RateLimitPerSecond: cfg.RateLimit.PerSecond,
		RateLimitBurst:     cfg.RateLimit.Burst,
		RefreshCookieAge:   cfg.JWT.RefreshTokenExpiry,
		SecureCookies:      cfg.Server.GinMode == gin.ReleaseMode,
	}, repos, services)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Cancel background worker context
	cancel()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server exited")
}
