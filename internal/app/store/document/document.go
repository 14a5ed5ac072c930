// internal/app/store/document/document.go

// Package document owns the single persisted JSON document that holds every
// entity collection. Each mutating operation elsewhere in the app performs a
// full load-mutate-save cycle against this store; there is no partial update.
package document

import (
	"time"

	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Document is the whole persisted state: all entity collections plus
// app settings and the id counters.
type Document struct {
	Users    []models.User      `json:"users"`
	Crops    []models.Crop      `json:"crops"`
	Blogs    []models.Blog      `json:"blogs"`
	Settings models.AppSettings `json:"settings"`
	Counters Counters           `json:"counters"`
}

// Counters holds the monotonic next-id counters, one per collection.
//
// Ids are assigned by incrementing these counters, never derived from the
// current collection length, so an id is never reused after a deletion.
type Counters struct {
	Users int `json:"users"`
	Crops int `json:"crops"`
	Blogs int `json:"blogs"`
}

// Empty returns a document with all collections present and empty.
// This is the degraded document substituted when the backing file
// fails to parse.
func Empty() *Document {
	return &Document{
		Users: []models.User{},
		Crops: []models.Crop{},
		Blogs: []models.Blog{},
	}
}

// NextUserID advances the user counter and returns the new id.
func (d *Document) NextUserID() int {
	d.Counters.Users++
	return d.Counters.Users
}

// NextCropID advances the crop counter and returns the new id.
func (d *Document) NextCropID() int {
	d.Counters.Crops++
	return d.Counters.Crops
}

// NextBlogID advances the blog counter and returns the new id.
func (d *Document) NextBlogID() int {
	d.Counters.Blogs++
	return d.Counters.Blogs
}

// normalize makes sure every collection slice is non-nil and the counters
// are at least as large as the highest id already present. The counter
// adjustment only matters for documents written before counters existed;
// it never lowers a counter.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Crops == nil {
		d.Crops = []models.Crop{}
	}
	if d.Blogs == nil {
		d.Blogs = []models.Blog{}
	}
	for _, u := range d.Users {
		if u.ID > d.Counters.Users {
			d.Counters.Users = u.ID
		}
	}
	for _, c := range d.Crops {
		if c.ID > d.Counters.Crops {
			d.Counters.Crops = c.ID
		}
	}
	for _, b := range d.Blogs {
		if b.ID > d.Counters.Blogs {
			d.Counters.Blogs = b.ID
		}
	}
}

// SeedConfig describes the records written into a brand-new document.
type SeedConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	AdminEmail        string
	AdminPhone        string
}

// Seeded returns the default document created on first run: one admin user
// and one welcome blog post, authored by the admin.
func Seeded(seed SeedConfig, now time.Time) *Document {
	doc := Empty()
	doc.Settings = models.AppSettings{
		AppName: models.DefaultAppName,
		Version: models.DefaultAppVersion,
	}

	admin := models.User{
		ID:           doc.NextUserID(),
		Username:     seed.AdminUsername,
		PasswordHash: seed.AdminPasswordHash,
		Email:        seed.AdminEmail,
		Phone:        seed.AdminPhone,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
	}
	doc.Users = append(doc.Users, admin)

	doc.Blogs = append(doc.Blogs, models.Blog{
		ID:        doc.NextBlogID(),
		Title:     "Welcome to Smart Farming",
		Content:   "This is the beginning of modern farming with technology.",
		Author:    admin.Username,
		Category:  models.DefaultBlogCategory,
		CreatedAt: now,
	})

	return doc
}
