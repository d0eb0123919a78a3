package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// errorBody is the error shape the dental client understands
type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respondWithError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, errorBody{Message: message, Code: code})
}

// respondWithDomainError maps repository errors onto HTTP responses
func respondWithDomainError(c *gin.Context, err error) {
	var validationErr *apierrors.ValidationError
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
			Message: validationErr.Message,
			Code:    validationErr.Code,
			Errors:  validationErr.Fields,
		})
		return
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		respondWithError(c, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}

	observability.LoggerFromContext(c.Request.Context()).Error().Err(err).Msg("Unhandled error")
	respondWithError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

// bindJSON decodes the body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload")
		return false
	}
	return true
}
