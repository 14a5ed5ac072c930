// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/authutil"
	"github.com/dalemusser/smartfarm/internal/app/system/normalize"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// AdminConfig holds the bootstrap admin account settings.
type AdminConfig struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, docs *document.Store, admin AdminConfig, logger *zap.Logger) error {
	return seedAdmin(ctx, docs, admin, logger)
}

// seedAdmin makes sure the bootstrap admin account exists. The first-run
// document is seeded when the data file is created; this covers documents
// that lost their admin account (degraded or hand-edited files).
func seedAdmin(ctx context.Context, docs *document.Store, admin AdminConfig, logger *zap.Logger) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	doc, err := docs.Load(ctx)
	if err != nil {
		return err
	}
	key := normalize.UsernameKey(admin.Username)
	for _, u := range doc.Users {
		if normalize.UsernameKey(u.Username) == key {
			return nil
		}
	}

	hash, err := authutil.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	err = docs.Update(ctx, func(doc *document.Document) error {
		for _, u := range doc.Users {
			if normalize.UsernameKey(u.Username) == key {
				return nil
			}
		}
		seeded := document.Seeded(document.SeedConfig{
			AdminUsername:     admin.Username,
			AdminPasswordHash: hash,
			AdminEmail:        admin.Email,
			AdminPhone:        admin.Phone,
		}, time.Now())
		adminUser := seeded.Users[0]
		adminUser.ID = doc.NextUserID()
		doc.Users = append(doc.Users, adminUser)
		if len(doc.Blogs) == 0 {
			welcome := seeded.Blogs[0]
			welcome.ID = doc.NextBlogID()
			welcome.Author = adminUser.Username
			doc.Blogs = append(doc.Blogs, welcome)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("seeded bootstrap admin account",
		zap.String("username", admin.Username),
		zap.String("role", models.RoleAdmin))
	return nil
}
