package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse sends payload with the given status code
func JSONResponse(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// ErrorResponse sends the standard {"message": ...} error body
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}

// ValidationErrorResponse sends a 400 with one message per rejected field
func ValidationErrorResponse(c *gin.Context, message string, fields map[string]string) {
	body := gin.H{"message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
