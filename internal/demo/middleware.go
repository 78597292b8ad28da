// Package demo implements the read-only demo mode used when serving a
// database generated by the seed-demo command.
package demo

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyDemoMode is set on every request so handlers can tell a demo
// deployment apart.
const ContextKeyDemoMode = "demo_mode"

// Middleware blocks write operations in demo mode.
// Read-only methods (GET, HEAD, OPTIONS) are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)

		if !m.enabled || isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "this action is disabled in demo mode",
			"code":      "FORBIDDEN",
			"demo_mode": true,
		})
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
