package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"centros-turnos-api/internal/service"
	"centros-turnos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service failures onto status codes. Anything that is
// not a *service.Error is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case service.KindValidation:
			utils.ValidationErrorResponse(c, se.Message, se.Fields)
		case service.KindNotFound:
			utils.ErrorResponse(c, http.StatusNotFound, se.Message)
		case service.KindConflict:
			utils.ErrorResponse(c, http.StatusConflict, se.Message)
		case service.KindForbidden:
			utils.ErrorResponse(c, http.StatusForbidden, se.Message)
		default:
			utils.ErrorResponse(c, http.StatusBadRequest, se.Message)
		}
		return
	}

	log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

// paramID parses a numeric path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}
