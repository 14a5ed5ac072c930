// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/resources"
	"github.com/dalemusser/smartfarm/internal/app/system/tasks"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
)

// Startup runs once after the data file is initialized and seeded, but
// before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having a
// ready data store and fully loaded configuration. Unlike ConnectDB and
// EnsureSchema which focus on infrastructure, Startup is for
// application-level initialization.
//
// Common uses for Startup:
//   - Load shared templates from the resources directory
//   - Warm caches with frequently accessed data
//   - Initialize in-memory lookup tables
//   - Set up background workers or scheduled tasks
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. Returning nil signals that initialization succeeded.
//
// The context will be cancelled if the process is asked to shut down while
// Startup is running; honor it in any long-running work.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// viewdata needs the store so page chrome can reflect site settings.
	viewdata.Init(deps.Docs)

	// Start background task runner
	if appCfg.BackupEnabled {
		startTaskRunner(appCfg, deps, logger)
	}

	logger.Info("startup complete")
	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.DataFileBackupJob(
		deps.Docs,
		appCfg.BackupDir,
		appCfg.BackupInterval,
		appCfg.BackupKeep,
		logger,
	))

	taskRunner.Start()
}
