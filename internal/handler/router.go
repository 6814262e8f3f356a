package handler

import (
	"context"
	"net/http"
	"time"

	"centros-turnos-api/internal/metrics"
	"centros-turnos-api/internal/middleware"
	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the HTTP settings taken from the environment.
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	RefreshCookieAge   time.Duration
	SecureCookies      bool
}

// Services groups the application services the handlers depend on.
type Services struct {
	Auth           *service.AuthService
	Centers        *service.CenterService
	Blocks         *service.BlockService
	Reservations   *service.ReservationService
	Municipalities *service.MunicipalityService
	Operators      *service.OperatorService
	Site           models.SiteConfig
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(cfg RouterConfig, repos *repository.Repositories, svc Services) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Logger(), middleware.Metrics(), middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authHandler := NewAuthHandler(svc.Auth, int(cfg.RefreshCookieAge.Seconds()), cfg.SecureCookies)
	centerHandler := NewCenterHandler(svc.Centers)
	blockHandler := NewBlockHandler(svc.Blocks)
	turnoHandler := NewTurnoHandler(svc.Reservations)
	municipalityHandler := NewMunicipalityHandler(svc.Municipalities)
	operatorHandler := NewOperatorHandler(svc.Operators)
	siteHandler := NewSiteHandler(svc.Site)

	acl := middleware.NewAccessControlMiddleware(repos.UserCenters, repos.Blocks)
	limit := middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repos.Ping(ctx); err != nil {
			utils.JSONResponse(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "centros-turnos-api",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", limit, authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), authHandler.Register)
	}

	// Public API
	api := r.Group("/api")
	{
		api.GET("/centros/", centerHandler.ListCenters)
		api.POST("/centros/", limit, centerHandler.RegisterCenter)
		api.GET("/centros/tipos/", centerHandler.GetCenterTypes)
		api.GET("/centros/:id", centerHandler.GetCenter)
		api.GET("/centros/:id/turnos_disponibles/", turnoHandler.AvailableTurnos)
		api.POST("/centros/:id/reserva/", limit, turnoHandler.Reserve)
		api.GET("/centros-all/", centerHandler.ListAllPublicCenters)

		api.GET("/reservas/:codigo", turnoHandler.GetReservation)

		api.GET("/municipios/", municipalityHandler.ListMunicipalities)
		api.GET("/municipios/top/:n", turnoHandler.TopMunicipalities)
		api.GET("/turnosPorTipo/:rango", turnoHandler.ReservationsByType)

		api.GET("/sitio/", siteHandler.GetSite)
	}

	// Back office
	admin := api.Group("/admin", middleware.AuthMiddleware())
	{
		// Operators manage the blocks of their assigned centers
		staff := admin.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleOperator))
		staff.GET("/centros/:id/bloques", acl.CheckCenterAccess(), blockHandler.ListBlocks)
		staff.POST("/centros/:id/bloques", acl.CheckCenterAccess(), blockHandler.CreateBlock)
		staff.DELETE("/bloques/:id", acl.CheckBlockAccess(), blockHandler.DeactivateBlock)

		adminOnly := admin.Group("", middleware.RequireAdmin())
		adminOnly.GET("/centros/", centerHandler.AdminListCenters)
		adminOnly.GET("/centros/:id", centerHandler.AdminGetCenter)
		adminOnly.PATCH("/centros/:id/aprobar", centerHandler.ApproveCenter)
		adminOnly.PATCH("/centros/:id/publicar", centerHandler.PublishCenter)
		adminOnly.PATCH("/centros/:id/despublicar", centerHandler.UnpublishCenter)
		adminOnly.DELETE("/centros/:id", centerHandler.DeactivateCenter)

		adminOnly.POST("/municipios", municipalityHandler.CreateMunicipality)

		adminOnly.GET("/usuarios/:user_id/centros", operatorHandler.ListCenters)
		adminOnly.POST("/usuarios/:user_id/centros/:id", operatorHandler.AssignCenter)
		adminOnly.DELETE("/usuarios/:user_id/centros/:id", operatorHandler.RemoveCenter)
	}

	return r
}
