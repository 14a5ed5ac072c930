// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Store provides access to the settings object of the data document.
type Store struct {
	docs *document.Store
}

// New creates a new settings store backed by the given document store.
func New(docs *document.Store) *Store {
	return &Store{docs: docs}
}

// Get returns the application settings. Empty fields fall back to the
// defaults so a degraded document still renders a usable site chrome.
func (s *Store) Get(ctx context.Context) (models.AppSettings, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return models.AppSettings{}, err
	}
	settings := doc.Settings
	if settings.AppName == "" {
		settings.AppName = models.DefaultAppName
	}
	if settings.Version == "" {
		settings.Version = models.DefaultAppVersion
	}
	return settings, nil
}

// Update replaces the application settings.
func (s *Store) Update(ctx context.Context, settings models.AppSettings) error {
	return s.docs.Update(ctx, func(doc *document.Document) error {
		doc.Settings = settings
		return nil
	})
}
