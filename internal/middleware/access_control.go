package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccessControlMiddleware restricts operators to the centers assigned to them
type AccessControlMiddleware struct {
	userCenterRepo *repository.UserCenterRepository
	blockRepo      *repository.BlockRepository
}

// NewAccessControlMiddleware creates a new access control middleware
func NewAccessControlMiddleware(
	userCenterRepo *repository.UserCenterRepository,
	blockRepo *repository.BlockRepository,
) *AccessControlMiddleware {
	return &AccessControlMiddleware{
		userCenterRepo: userCenterRepo,
		blockRepo:      blockRepo,
	}
}

// CheckCenterAccess verifies the user may manage the center in the :id path parameter
func (m *AccessControlMiddleware) CheckCenterAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		centerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid center ID")
			c.Abort()
			return
		}
		m.authorize(c, func(ctx context.Context) (uint, error) {
			return uint(centerID), nil
		})
	}
}

// CheckBlockAccess verifies the user may manage the center owning the block in the :id path parameter
func (m *AccessControlMiddleware) CheckBlockAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		blockID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid block ID")
			c.Abort()
			return
		}
		m.authorize(c, func(ctx context.Context) (uint, error) {
			block, err := m.blockRepo.GetBlockByID(ctx, uint(blockID))
			if err != nil {
				return 0, err
			}
			return block.CenterID, nil
		})
	}
}

func (m *AccessControlMiddleware) authorize(c *gin.Context, resolveCenter func(ctx context.Context) (uint, error)) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		c.Abort()
		return
	}

	// Admin users may manage every center
	if c.GetString("role") == models.RoleAdmin {
		c.Next()
		return
	}

	centerID, err := resolveCenter(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Block not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
		}
		c.Abort()
		return
	}

	hasAccess, err := m.userCenterRepo.UserHasAccessToCenter(c.Request.Context(), userID.(uint), centerID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
		c.Abort()
		return
	}
	if !hasAccess {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied: you are not assigned to this center")
		c.Abort()
		return
	}

	c.Next()
}
