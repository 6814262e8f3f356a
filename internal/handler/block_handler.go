package handler

import (
	"net/http"

	"centros-turnos-api/internal/schema"
	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	blockService *service.BlockService
}

func NewBlockHandler(blockService *service.BlockService) *BlockHandler {
	return &BlockHandler{
		blockService: blockService,
	}
}

// CreateBlock adds a capacity block to a center
func (h *BlockHandler) CreateBlock(c *gin.Context) {
	centerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req schema.BlockIn
	if err := schema.BindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		respondError(c, err)
		return
	}

	block, err := h.blockService.Create(c.Request.Context(), centerID, currentUserID(c), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{"bloque": schema.DumpBlock(block)})
}

// ListBlocks returns the active blocks of a center
func (h *BlockHandler) ListBlocks(c *gin.Context) {
	centerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	blocks, err := h.blockService.List(c.Request.Context(), centerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"bloques": schema.DumpBlocks(blocks)})
}

// DeactivateBlock soft deletes a block
func (h *BlockHandler) DeactivateBlock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.blockService.Deactivate(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, "Block deactivated successfully")
}
