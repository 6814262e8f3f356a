package handler

import (
	"net/http"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves the site configuration resolved at startup.
type SiteHandler struct {
	site models.SiteConfig
}

func NewSiteHandler(site models.SiteConfig) *SiteHandler {
	return &SiteHandler{site: site}
}

func (h *SiteHandler) GetSite(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, gin.H{"sitio": h.site})
}
