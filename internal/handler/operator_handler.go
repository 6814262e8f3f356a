package handler

import (
	"net/http"

	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OperatorHandler struct {
	operatorService *service.OperatorService
}

func NewOperatorHandler(operatorService *service.OperatorService) *OperatorHandler {
	return &OperatorHandler{
		operatorService: operatorService,
	}
}

// AssignCenter grants an operator access to a center (admin only)
func (h *OperatorHandler) AssignCenter(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	centerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.operatorService.Assign(c.Request.Context(), userID, centerID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, "Operator assigned successfully")
}

// RemoveCenter revokes an operator's access to a center (admin only)
func (h *OperatorHandler) RemoveCenter(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	centerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.operatorService.Remove(c.Request.Context(), userID, centerID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, "Operator removed successfully")
}

// ListCenters returns the ids of the centers assigned to an operator (admin only)
func (h *OperatorHandler) ListCenters(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	ids, err := h.operatorService.Centers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"centros": ids})
}
