// Package middleware contains the HTTP middleware chain.
//
// Each middleware covers one cross-cutting concern; the router wires
// them in order: recovery, request id, CORS, logging, rate limiting,
// metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the request id header name
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the gin context key for the request id
	RequestIDContextKey = "request_id"
)

// RequestID attaches a unique id to every request. A client-supplied
// X-Request-ID is honored; otherwise a fresh UUID is generated. The id
// is echoed in the response header and carried through the logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID returns the request id from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDContextKey); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	return ""
}
