// Package respond owns the response envelope and the single canonical
// mapping from domain errors to HTTP status codes. Every handler terminates
// through one of these helpers so each request gets exactly one response.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// Envelope is the two-field result wrapper returned by the service layer.
type Envelope struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// BadRequest writes a 400 failure envelope with a descriptive message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// Error converts a domain error into a failure envelope using the canonical
// status mapping. Unknown errors become a generic 500 so provider-internal
// detail never reaches the client.
func Error(c *gin.Context, err error) {
	c.JSON(statusFor(err), Envelope{Success: false, Message: messageFor(err)})
}

// Abort writes the failure envelope and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), Envelope{Success: false, Message: messageFor(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrNoProfiles):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIdentitySyncFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	for _, known := range []error{
		domain.ErrTokenMissing,
		domain.ErrInvalidToken,
		domain.ErrForbidden,
		domain.ErrIdentityNotFound,
		domain.ErrProfileNotFound,
		domain.ErrNoProfiles,
		domain.ErrProfileExists,
		domain.ErrEmailExists,
		domain.ErrIdentitySyncFailed,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}
