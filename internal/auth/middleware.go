package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/config"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyAuthType = "auth_type" // "none" or "header"
)

// AuthType indicates how the user was identified
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeHeader AuthType = "header"
)

// maxUserIDLength bounds the header value accepted as a user id.
const maxUserIDLength = 128

// Middleware attaches the acting user id to each request.
type Middleware struct {
	config      config.Auth
	publicPaths map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(cfg config.Auth) *Middleware {
	if cfg.UserHeader == "" {
		cfg.UserHeader = config.DefaultUserHeader
	}
	if cfg.DefaultUserID == "" {
		cfg.DefaultUserID = config.DefaultUserID
	}

	return &Middleware{
		config: cfg,
		publicPaths: map[string]bool{
			"/health": true,
			"/ping":   true,
		},
	}
}

// Handler returns a Gin middleware handler that identifies requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode == config.AuthModeHeader {
		return m.headerHandler()
	}
	return m.noAuthHandler()
}

// noAuthHandler injects the configured default user for all requests.
func (m *Middleware) noAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, m.config.DefaultUserID)
		c.Set(ContextKeyAuthType, AuthTypeNone)
		c.Next()
	}
}

func (m *Middleware) headerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		userID := strings.TrimSpace(c.GetHeader(m.config.UserHeader))
		if userID == "" || len(userID) > maxUserIDLength {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"code":  "UNAUTHENTICATED",
			})
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyAuthType, AuthTypeHeader)
		c.Next()
	}
}

// isPublicPath checks if a path should be accessible without a user.
func (m *Middleware) isPublicPath(path string) bool {
	return m.publicPaths[path]
}

// RequireUser aborts with 401 when no user id was attached. Mount it on
// groups that must never run anonymously even if Handler is misconfigured.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"code":  "UNAUTHENTICATED",
			})
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the acting user's id from the context.
// Returns "" on public paths.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// GetAuthType retrieves how the user was identified.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
