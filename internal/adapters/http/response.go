// Package http contains the HTTP adapters (REST APIs).
//
// Layout:
// - common/: shared response types and the domain error mapper
// - middleware/: HTTP middleware (request id, logging, recovery, ...)
// - handlers/: one handler per resource
// - router.go: route assembly per service
// - server.go: HTTP server lifecycle
//
// The HTTP layer is a pure adapter: it converts requests into use case
// calls and domain errors into status codes, nothing more.
package http

import (
	"github.com/Haleralex/walletflow/internal/adapters/http/common"
)

// Re-exports from the common package for convenience.
type (
	// ErrorResponse is the error body of every non-2xx response.
	ErrorResponse = common.ErrorResponse
)

var (
	// GetRequestID returns the request id from the gin context.
	GetRequestID = common.GetRequestID
	// SetRequestID stores the request id in the gin context.
	SetRequestID = common.SetRequestID
	// Fail sends an error response.
	Fail = common.Fail
	// HandleDomainError translates a domain error into an HTTP response.
	HandleDomainError = common.HandleDomainError
)
