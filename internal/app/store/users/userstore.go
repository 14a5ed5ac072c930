// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/normalize"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Store provides access to the users collection of the data document.
type Store struct {
	docs *document.Store
}

// New creates a new user store backed by the given document store.
func New(docs *document.Store) *Store {
	return &Store{docs: docs}
}

var (
	// ErrUsernameTaken is returned when attempting to create a user with a
	// username that already exists.
	ErrUsernameTaken = errors.New("a user with this username already exists")
	errBadRole       = errors.New("invalid role")
)

// CreateInput holds the fields for creating a new user.
type CreateInput struct {
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	Role         string
}

// Create inserts a new user after normalizing and validating fields.
// The duplicate check on username is case-insensitive.
func (s *Store) Create(ctx context.Context, input CreateInput) (models.User, error) {
	u := models.User{
		Username:     normalize.Username(input.Username),
		PasswordHash: input.PasswordHash,
		Email:        normalize.Email(input.Email),
		Phone:        normalize.Phone(input.Phone),
		Role:         normalize.Role(input.Role),
		CreatedAt:    time.Now(),
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	err := s.docs.Update(ctx, func(doc *document.Document) error {
		key := normalize.UsernameKey(u.Username)
		for _, existing := range doc.Users {
			if normalize.UsernameKey(existing.Username) == key {
				return ErrUsernameTaken
			}
		}
		u.ID = doc.NextUserID()
		doc.Users = append(doc.Users, u)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by id. Returns document.ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id int) (*models.User, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, document.ErrNotFound
}

// GetByUsername looks up a user by case-insensitive username.
// Returns document.ErrNotFound if absent.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := normalize.UsernameKey(username)
	for i := range doc.Users {
		if normalize.UsernameKey(doc.Users[i].Username) == key {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, document.ErrNotFound
}

// List returns all users sorted by username.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	users := append([]models.User(nil), doc.Users...)
	sort.Slice(users, func(i, j int) bool {
		return normalize.UsernameKey(users[i].Username) < normalize.UsernameKey(users[j].Username)
	})
	return users, nil
}

// ListByRole returns all users with the given role, sorted by username.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(all))
	for _, u := range all {
		if u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

// Delete removes a user by id. Returns document.ErrNotFound if absent.
// The user's crops are left in place; they keep their farmer reference.
func (s *Store) Delete(ctx context.Context, id int) error {
	return s.docs.Update(ctx, func(doc *document.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return document.ErrNotFound
	})
}

// CountAdmins returns the number of users with the admin role.
func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range doc.Users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}
