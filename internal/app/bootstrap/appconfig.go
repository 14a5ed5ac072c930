// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where you put everything specific to YOUR application:
//   - The data file path and write behavior
//   - Session and CSRF keys
//   - Admin seeding values
//   - Business logic configuration
//
// Add fields here as your application grows. The struct is passed to
// most lifecycle hooks, so any configuration needed during startup,
// request handling, or shutdown should live here.
type AppConfig struct {
	// Data file configuration
	DataFile        string // Path to the JSON data file (e.g., ./instance/farm_data.json)
	SerializeWrites bool   // Funnel all writes through a single goroutine instead of a mutex

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: smartfarm-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Data file backup configuration
	BackupEnabled  bool          // Enable periodic data file backups
	BackupDir      string        // Directory for backup copies (default: ./instance/backups)
	BackupInterval time.Duration // Time between backups (default: 24h)
	BackupKeep     int           // Number of backup copies to retain (default: 7)

	// Admin seeding configuration
	// When SeedAdminUsername is set and no user with that username exists,
	// an admin account is created on startup with these values.
	SeedAdminUsername string // Username of the admin user to create on startup (if set)
	SeedAdminPassword string // Password for the seeded admin account
	SeedAdminEmail    string // Email of the seeded admin account
	SeedAdminPhone    string // Phone number of the seeded admin account
}
