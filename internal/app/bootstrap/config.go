// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
// Change this constant when forking smartfarm for a new project.
const EnvVarPrefix = "SMARTFARM"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: data_file, session_name, etc.
//   - Environment variables: SMARTFARM_DATA_FILE, SMARTFARM_SESSION_NAME, etc.
//   - Command-line flags: --data_file, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "data_file", Default: "./instance/farm_data.json", Desc: "Path to the JSON data file"},
	{Name: "serialize_writes", Default: false, Desc: "Funnel data file writes through a single goroutine"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "smartfarm-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Data file backup configuration
	{Name: "backup_enabled", Default: true, Desc: "Enable periodic data file backups"},
	{Name: "backup_dir", Default: "./instance/backups", Desc: "Directory for data file backup copies"},
	{Name: "backup_interval", Default: "24h", Desc: "Time between data file backups (e.g., 1h, 24h)"},
	{Name: "backup_keep", Default: 7, Desc: "Number of backup copies to retain"},

	// Admin seeding configuration
	{Name: "seed_admin_username", Default: "admin", Desc: "Username of admin user to create on startup (blank to disable)"},
	{Name: "seed_admin_password", Default: "admin123", Desc: "Password of the seeded admin user (change in production)"},
	{Name: "seed_admin_email", Default: "admin@smartfarm.local", Desc: "Email of the seeded admin user"},
	{Name: "seed_admin_phone", Default: "", Desc: "Phone number of the seeded admin user"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SMARTFARM_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DataFile:        appValues.String("data_file"),
		SerializeWrites: appValues.Bool("serialize_writes"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		// Data file backups
		BackupEnabled:  appValues.Bool("backup_enabled"),
		BackupDir:      appValues.String("backup_dir"),
		BackupInterval: appValues.Duration("backup_interval", 24*time.Hour),
		BackupKeep:     appValues.Int("backup_keep"),

		// Admin seeding
		SeedAdminUsername: appValues.String("seed_admin_username"),
		SeedAdminPassword: appValues.String("seed_admin_password"),
		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminPhone:    appValues.String("seed_admin_phone"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.DataFile == "" {
		logger.Error("data_file must not be empty")
		return fmt.Errorf("data_file must not be empty")
	}

	return nil
}
