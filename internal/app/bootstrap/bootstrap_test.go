// internal/app/bootstrap/bootstrap_test.go
package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/smartfarm/internal/app/store/users"
)

func testAppConfig(t *testing.T) AppConfig {
	t.Helper()
	return AppConfig{
		DataFile:          filepath.Join(t.TempDir(), "farm_data.json"),
		SessionKey:        "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		SessionName:       "smartfarm-session",
		SessionMaxAge:     time.Hour,
		CSRFKey:           "0123456789abcdef0123456789abcdef",
		SeedAdminUsername: "admin",
		SeedAdminPassword: "admin123",
		SeedAdminEmail:    "admin@smartfarm.local",
	}
}

func TestHooksWired(t *testing.T) {
	if Hooks.Name != "smartfarm" {
		t.Errorf("Hooks.Name = %q, want %q", Hooks.Name, "smartfarm")
	}
	if Hooks.LoadConfig == nil || Hooks.ConnectDB == nil || Hooks.BuildHandler == nil {
		t.Fatal("required lifecycle hooks must not be nil")
	}
	if Hooks.ValidateConfig == nil || Hooks.EnsureSchema == nil || Hooks.Startup == nil || Hooks.Shutdown == nil {
		t.Error("optional lifecycle hooks should all be wired")
	}
}

func TestValidateConfig_RequiresDataFile(t *testing.T) {
	appCfg := testAppConfig(t)
	appCfg.DataFile = ""

	if err := ValidateConfig(&config.CoreConfig{}, appCfg, zap.NewNop()); err == nil {
		t.Error("ValidateConfig() should reject an empty data_file")
	}
}

func TestLifecycle_ConnectThroughShutdown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coreCfg := &config.CoreConfig{}
	appCfg := testAppConfig(t)
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		t.Fatalf("ConnectDB() returned error: %v", err)
	}
	if deps.Docs == nil {
		t.Fatal("ConnectDB() should return a document store")
	}

	if err := EnsureSchema(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Fatalf("EnsureSchema() returned error: %v", err)
	}
	if _, err := os.Stat(appCfg.DataFile); err != nil {
		t.Fatalf("data file should exist after EnsureSchema: %v", err)
	}

	// The seeded admin account is usable immediately.
	admin, err := userstore.New(deps.Docs).GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("seeded admin should exist: %v", err)
	}
	if admin.Role != "admin" {
		t.Errorf("seeded account role = %q, want %q", admin.Role, "admin")
	}

	if err := Startup(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Fatalf("Startup() returned error: %v", err)
	}

	if err := Shutdown(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Errorf("Shutdown() returned error: %v", err)
	}
}

func TestLifecycle_BackupRunnerStopsCleanly(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coreCfg := &config.CoreConfig{}
	appCfg := testAppConfig(t)
	appCfg.BackupEnabled = true
	appCfg.BackupDir = filepath.Join(filepath.Dir(appCfg.DataFile), "backups")
	appCfg.BackupInterval = time.Hour
	appCfg.BackupKeep = 2
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		t.Fatalf("ConnectDB() returned error: %v", err)
	}
	if err := EnsureSchema(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Fatalf("EnsureSchema() returned error: %v", err)
	}
	if err := Startup(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Fatalf("Startup() returned error: %v", err)
	}

	// The backup job runs immediately on start; give it a moment.
	deadline := time.Now().Add(5 * time.Second)
	for {
		entries, _ := os.ReadDir(appCfg.BackupDir)
		if len(entries) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("backup job should have produced a copy of the data file")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := Shutdown(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Errorf("Shutdown() returned error: %v", err)
	}
}
