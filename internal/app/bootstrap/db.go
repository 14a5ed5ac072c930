// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/authutil"
	"github.com/dalemusser/smartfarm/internal/app/system/seeding"
)

// ConnectDB opens the flat-file document store.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. The store does not hold an open file handle; "connecting" here
// means constructing the store with its options so later hooks and handlers
// can use it.
//
// Best practices:
//   - Log the backing file path for debugging
//   - Return descriptive errors if setup fails
//   - Store handles in the DBDeps struct for use in handlers
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := []document.Option{}
	if appCfg.SerializeWrites {
		opts = append(opts, document.WithSerializedWrites())
	}

	// The first-run document carries the bootstrap admin account and a
	// welcome blog post, so a fresh install is usable immediately.
	if appCfg.SeedAdminUsername != "" && appCfg.SeedAdminPassword != "" {
		hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
		if err != nil {
			return DBDeps{}, fmt.Errorf("hash seed admin password: %w", err)
		}
		seed := document.SeedConfig{
			AdminUsername:     appCfg.SeedAdminUsername,
			AdminPasswordHash: hash,
			AdminEmail:        appCfg.SeedAdminEmail,
			AdminPhone:        appCfg.SeedAdminPhone,
		}
		opts = append(opts, document.WithDefaultDocument(func() *document.Document {
			return document.Seeded(seed, time.Now())
		}))
	}

	docs := document.New(appCfg.DataFile, logger, opts...)

	logger.Info("opened document store",
		zap.String("data_file", appCfg.DataFile),
		zap.Bool("serialize_writes", appCfg.SerializeWrites),
	)

	return DBDeps{Docs: docs}, nil
}

// EnsureSchema prepares the data file for serving.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. For a flat-file store there are no indexes or
// migrations; this hook creates the data directory and file on first run
// and seeds default data into existing files that lack it.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("initializing data file")
	if err := deps.Docs.Init(ctx); err != nil {
		logger.Error("failed to initialize data file", zap.Error(err))
		return err
	}

	logger.Info("seeding default data")
	if err := seeding.SeedAll(ctx, deps.Docs, seeding.AdminConfig{
		Username: appCfg.SeedAdminUsername,
		Password: appCfg.SeedAdminPassword,
		Email:    appCfg.SeedAdminEmail,
		Phone:    appCfg.SeedAdminPhone,
	}, logger); err != nil {
		logger.Error("failed to seed default data", zap.Error(err))
		return err
	}

	logger.Info("data file ready")
	return nil
}
