// Package common holds shared types for the HTTP layer.
//
// Kept in its own package to avoid import cycles between handlers and
// the main http package.
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/Haleralex/walletflow/internal/domain/errors"
)

// ErrorResponse is the error body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ============================================
// Request ID
// ============================================

const RequestIDKey = "X-Request-ID"

// GetRequestID returns the request id from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		return id.(string)
	}
	return ""
}

// SetRequestID stores the request id in the gin context and echoes it
// in the response header.
func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIDKey, id)
	c.Header(RequestIDKey, id)
}

// ============================================
// Response Helpers
// ============================================

// Fail sends an error response.
func Fail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, ErrorResponse{Detail: detail})
}

// ValidationFailed sends a 422.
func ValidationFailed(c *gin.Context, detail string) {
	Fail(c, http.StatusUnprocessableEntity, detail)
}

// NotFound sends a 404.
func NotFound(c *gin.Context, detail string) {
	Fail(c, http.StatusNotFound, detail)
}

// Conflict sends a 409.
func Conflict(c *gin.Context, detail string) {
	Fail(c, http.StatusConflict, detail)
}

// BadRequest sends a 400.
func BadRequest(c *gin.Context, detail string) {
	Fail(c, http.StatusBadRequest, detail)
}

// InternalError sends a 500.
func InternalError(c *gin.Context, detail string) {
	Fail(c, http.StatusInternalServerError, detail)
}

// ============================================
// Domain Error to HTTP Status Mapper
// ============================================

// HandleDomainError translates a domain error into an HTTP response.
//
// Mapping:
//   - validation failures            -> 422
//   - unknown wallet                 -> 404
//   - insufficient balance           -> 400 (business rule, not retryable)
//   - optimistic lock exhaustion     -> 409 (client may retry)
//   - everything else                -> 500
func HandleDomainError(c *gin.Context, err error) {
	if domainerrors.IsValidationError(err) {
		ValidationFailed(c, err.Error())
		return
	}

	if domainerrors.IsInsufficientBalance(err) {
		BadRequest(c, "insufficient balance")
		return
	}

	if domainerrors.IsConcurrencyError(err) {
		Conflict(c, "wallet was modified concurrently, please retry")
		return
	}

	if domainerrors.IsNotFound(err) {
		NotFound(c, "wallet not found")
		return
	}

	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) {
		BadRequest(c, domainErr.Message)
		return
	}

	InternalError(c, "an unexpected error occurred")
}
