// Package schema holds the typed request and response bodies of the HTTP API
// and turns binding failures into per-field validation errors.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"centros-turnos-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerTagNames makes validator report JSON field names instead of Go ones.
func registerTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// BindJSON decodes and validates the request body into dst. Every failure is
// returned as a service validation error.
func BindJSON(c *gin.Context, dst interface{}) error {
	registerTagNames()

	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.Is(err, io.EOF):
		return service.NewValidationError("request body is required", nil)
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return service.NewValidationError("invalid request body", fields)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return service.NewValidationError("invalid request body", map[string]string{
			field: fmt.Sprintf("must be of type %s", typeErr.Type.Kind()),
		})
	case errors.As(err, &synErr):
		return service.NewValidationError("malformed JSON body", nil)
	default:
		return service.NewValidationError("invalid request body: "+err.Error(), nil)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "number", "numeric":
		return "must contain digits only"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "latitude", "longitude":
		return "must be a valid coordinate"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
