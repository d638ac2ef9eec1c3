package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/campustrade/campustrade/pkg/errors"
	"github.com/campustrade/campustrade/pkg/validator"
)

// bindAndValidate binds the JSON body and runs struct validation, translating
// failures into caller-facing validation errors.
func bindAndValidate(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return apperrors.NewBadRequest("invalid request payload")
	}

	if err := validator.ValidateStruct(target); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return apperrors.NewValidation(ve.Error())
		}
		return apperrors.NewBadRequest("invalid request payload")
	}
	return nil
}

// parseIntQuery reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func parseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequest("invalid " + name + " parameter")
	}
	return uint(value), nil
}

// pagination reads page/per_page query parameters with defaults.
func pagination(c *gin.Context) (page, perPage int) {
	return parseIntQuery(c, "page", 1), parseIntQuery(c, "per_page", 20)
}

// totalPages computes the page count for pagination metadata.
func totalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}
