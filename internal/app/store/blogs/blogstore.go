// internal/app/store/blogs/blogstore.go
package blogstore

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/normalize"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Store provides access to the blogs collection of the data document.
type Store struct {
	docs *document.Store
}

// New creates a new blog store backed by the given document store.
func New(docs *document.Store) *Store {
	return &Store{docs: docs}
}

// CreateInput contains the input for creating a blog post.
type CreateInput struct {
	Title    string
	Content  string
	Author   string
	Category string
}

// Create appends a new blog post. An empty category falls back to the
// default category.
func (s *Store) Create(ctx context.Context, input CreateInput) (models.Blog, error) {
	b := models.Blog{
		Title:     normalize.Name(input.Title),
		Content:   input.Content,
		Author:    input.Author,
		Category:  normalize.Name(input.Category),
		CreatedAt: time.Now(),
	}
	if b.Category == "" {
		b.Category = models.DefaultBlogCategory
	}

	err := s.docs.Update(ctx, func(doc *document.Document) error {
		b.ID = doc.NextBlogID()
		doc.Blogs = append(doc.Blogs, b)
		return nil
	})
	if err != nil {
		return models.Blog{}, err
	}
	return b, nil
}

// GetByID loads a blog post by id. Returns document.ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Blogs {
		if doc.Blogs[i].ID == id {
			b := doc.Blogs[i]
			return &b, nil
		}
	}
	return nil, document.ErrNotFound
}

// List returns all blog posts, most recent first.
func (s *Store) List(ctx context.Context) ([]models.Blog, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	blogs := append([]models.Blog(nil), doc.Blogs...)
	sortNewestFirst(blogs)
	return blogs, nil
}

// Recent returns at most n blog posts, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]models.Blog, error) {
	blogs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(blogs) > n {
		blogs = blogs[:n]
	}
	return blogs, nil
}

// Delete removes a blog post by id. Returns document.ErrNotFound if absent.
func (s *Store) Delete(ctx context.Context, id int) error {
	return s.docs.Update(ctx, func(doc *document.Document) error {
		for i := range doc.Blogs {
			if doc.Blogs[i].ID == id {
				doc.Blogs = append(doc.Blogs[:i], doc.Blogs[i+1:]...)
				return nil
			}
		}
		return document.ErrNotFound
	})
}

func sortNewestFirst(blogs []models.Blog) {
	sort.Slice(blogs, func(i, j int) bool {
		if blogs[i].CreatedAt.Equal(blogs[j].CreatedAt) {
			return blogs[i].ID > blogs[j].ID
		}
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
}
