// internal/app/store/users/fetcher.go
package userstore

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/timeouts"
)

// Fetcher implements auth.UserFetcher to load fresh user data on each request.
type Fetcher struct {
	docs   *document.Store
	logger *zap.Logger
}

// NewFetcher creates a UserFetcher that reads from the given document store.
func NewFetcher(docs *document.Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		docs:   docs,
		logger: logger,
	}
}

// FetchUser retrieves a user by ID and returns nil if the user is not found
// or if any error occurs. This implements auth.UserFetcher.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	id, err := strconv.Atoi(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	doc, err := f.docs.Load(ctx)
	if err != nil {
		f.logger.Warn("fetch session user failed", zap.Error(err))
		return nil
	}

	for i := range doc.Users {
		if doc.Users[i].ID == id {
			return &auth.SessionUser{
				ID:       userID,
				Username: doc.Users[i].Username,
				Role:     doc.Users[i].Role,
			}
		}
	}
	return nil
}
