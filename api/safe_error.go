package api

import (
	"errors"
	"net/http"

	"expo/config"
	"expo/repository"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage hides internal error details from clients in release mode
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// respondError maps repository errors onto the JSON envelope: validation
// errors become 400, missing records 404, anything else a logged 500.
func respondError(c *gin.Context, err error, notFound, fallback string) {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: verr.Message, Data: gin.H{"field": verr.Field}})
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, notFound)
	default:
		logError(c, err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// fieldErrors form errors keyed by field for template rendering
func fieldErrors(err error) (map[string]string, bool) {
	var verr *repository.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return map[string]string{verr.Field: verr.Message}, true
}
