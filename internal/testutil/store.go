// Package testutil provides utilities for testing, including data store setup and fixtures.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
)

// SetupTestStore returns a document store backed by a file in a fresh
// temp directory. The directory is removed when the test completes.
func SetupTestStore(t *testing.T, opts ...document.Option) *document.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farm_data.json")
	return document.New(path, zap.NewNop(), opts...)
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
