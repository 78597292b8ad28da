package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./ruckus.db"

	// DefaultCoversDir is where downloaded cover images are cached
	DefaultCoversDir = "./covers"

	// DefaultUserHeader carries the user id set by the upstream auth service
	DefaultUserHeader = "X-User-ID"

	// DefaultUserID is the single user assumed when AUTH_MODE=none
	DefaultUserID = "local"
)
