// Package auth resolves the acting user for each HTTP request.
//
// Ruckus does not manage accounts. Identity is asserted by an upstream
// authentication service, and user ids are opaque strings.
//
// It supports two modes:
//   - "none": every request acts as AUTH_DEFAULT_USER_ID (default)
//   - "header": the user id is read from AUTH_USER_HEADER; API requests
//     without it are rejected with 401
//
// # Configuration
//
//	AUTH_MODE=header
//	AUTH_USER_HEADER=X-User-ID   # default
//	AUTH_DEFAULT_USER_ID=local   # used in "none" mode
//
// # Usage
//
//	authMiddleware := auth.NewMiddleware(cfg.Auth)
//	router.Use(authMiddleware.Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
