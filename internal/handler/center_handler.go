package handler

import (
	"context"
	"net/http"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/schema"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CenterHandler struct {
	centerService *service.CenterService
}

func NewCenterHandler(centerService *service.CenterService) *CenterHandler {
	return &CenterHandler{
		centerService: centerService,
	}
}

// ListCenters returns one page of public centers
func (h *CenterHandler) ListCenters(c *gin.Context) {
	page, err := h.centerService.ListPublic(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, schema.DumpCenterPage(page, false))
}

// ListAllPublicCenters returns every public center without pagination
func (h *CenterHandler) ListAllPublicCenters(c *gin.Context) {
	centers, err := h.centerService.AllPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"centros": schema.DumpCenters(centers)})
}

// RegisterCenter creates a center pending approval
func (h *CenterHandler) RegisterCenter(c *gin.Context) {
	var req schema.CenterIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		respondError(c, err)
		return
	}

	center, err := h.centerService.Register(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{"centro": schema.DumpCenter(center)})
}

// GetCenter returns a public center
func (h *CenterHandler) GetCenter(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	center, err := h.centerService.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"centro": schema.DumpCenter(center)})
}

// GetCenterTypes returns the distinct types of active centers
func (h *CenterHandler) GetCenterTypes(c *gin.Context) {
	tipos, err := h.centerService.Types(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"tipos": tipos})
}

// AdminListCenters returns one page of every center, flags included (admin only)
func (h *CenterHandler) AdminListCenters(c *gin.Context) {
	page, err := h.centerService.ListAll(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, schema.DumpCenterPage(page, true))
}

// AdminGetCenter returns any center, flags included (admin only)
func (h *CenterHandler) AdminGetCenter(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	center, err := h.centerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"centro": schema.DumpAdminCenter(center)})
}

type transition func(ctx context.Context, id, userID uint) (*models.Center, error)

func (h *CenterHandler) transition(c *gin.Context, apply transition) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	center, err := apply(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"centro": schema.DumpAdminCenter(center)})
}

func (h *CenterHandler) ApproveCenter(c *gin.Context) {
	h.transition(c, h.centerService.Approve)
}

func (h *CenterHandler) PublishCenter(c *gin.Context) {
	h.transition(c, h.centerService.Publish)
}

func (h *CenterHandler) UnpublishCenter(c *gin.Context) {
	h.transition(c, h.centerService.Unpublish)
}

// DeactivateCenter soft deletes a center (admin only)
func (h *CenterHandler) DeactivateCenter(c *gin.Context) {
	h.transition(c, h.centerService.Deactivate)
}
