package handler

import (
	"net/http"

	"centros-turnos-api/internal/schema"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MunicipalityHandler struct {
	municipalityService *service.MunicipalityService
}

func NewMunicipalityHandler(municipalityService *service.MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{
		municipalityService: municipalityService,
	}
}

func (h *MunicipalityHandler) ListMunicipalities(c *gin.Context) {
	municipalities, err := h.municipalityService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"municipios": municipalities})
}

// CreateMunicipality adds a municipality (admin only)
func (h *MunicipalityHandler) CreateMunicipality(c *gin.Context) {
	var req schema.MunicipalityIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	municipality, err := h.municipalityService.Create(c.Request.Context(), req.Nombre, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{"municipio": municipality})
}
