// internal/app/store/crops/cropstore.go
package cropstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/normalize"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Store provides access to the crops collection of the data document.
type Store struct {
	docs *document.Store
}

// New creates a new crop store backed by the given document store.
func New(docs *document.Store) *Store {
	return &Store{docs: docs}
}

var errBadStatus = errors.New("invalid crop status")

// CreateInput contains the input for creating a crop record.
type CreateInput struct {
	CropName      string
	CropType      string
	Area          float64
	Season        string
	ExpectedYield float64
	Price         float64
	Description   string
	Farmer        string
	Status        string
}

// Create appends a new crop record owned by input.Farmer.
func (s *Store) Create(ctx context.Context, input CreateInput) (models.Crop, error) {
	now := time.Now()
	c := models.Crop{
		CropName:      normalize.Name(input.CropName),
		CropType:      normalize.Name(input.CropType),
		Area:          input.Area,
		Season:        normalize.Name(input.Season),
		ExpectedYield: input.ExpectedYield,
		Price:         input.Price,
		Description:   normalize.Name(input.Description),
		Farmer:        input.Farmer,
		Status:        input.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Status == "" {
		c.Status = models.StatusPlanted
	}
	if !models.IsValidCropStatus(c.Status) {
		return models.Crop{}, errBadStatus
	}

	err := s.docs.Update(ctx, func(doc *document.Document) error {
		c.ID = doc.NextCropID()
		doc.Crops = append(doc.Crops, c)
		return nil
	})
	if err != nil {
		return models.Crop{}, err
	}
	return c, nil
}

// GetByID loads a crop by id. Returns document.ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id int) (*models.Crop, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Crops {
		if doc.Crops[i].ID == id {
			c := doc.Crops[i]
			return &c, nil
		}
	}
	return nil, document.ErrNotFound
}

// List returns all crops, most recently created first.
func (s *Store) List(ctx context.Context) ([]models.Crop, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	crops := append([]models.Crop(nil), doc.Crops...)
	sortNewestFirst(crops)
	return crops, nil
}

// ListByFarmer returns the crops owned by the given farmer username,
// most recently created first.
func (s *Store) ListByFarmer(ctx context.Context, farmer string) ([]models.Crop, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := normalize.UsernameKey(farmer)
	var crops []models.Crop
	for _, c := range doc.Crops {
		if normalize.UsernameKey(c.Farmer) == key {
			crops = append(crops, c)
		}
	}
	sortNewestFirst(crops)
	return crops, nil
}

// UpdateInput contains the editable fields of a crop. Every field is
// written on update; ownership and timestamps are managed by the store.
type UpdateInput struct {
	CropName      string
	CropType      string
	Area          float64
	Season        string
	ExpectedYield float64
	Price         float64
	Description   string
	Status        string
}

// Update rewrites the editable fields of a crop and restamps UpdatedAt.
// Returns document.ErrNotFound if the crop does not exist.
func (s *Store) Update(ctx context.Context, id int, input UpdateInput) error {
	if input.Status != "" && !models.IsValidCropStatus(input.Status) {
		return errBadStatus
	}
	return s.docs.Update(ctx, func(doc *document.Document) error {
		for i := range doc.Crops {
			if doc.Crops[i].ID != id {
				continue
			}
			c := &doc.Crops[i]
			c.CropName = normalize.Name(input.CropName)
			c.CropType = normalize.Name(input.CropType)
			c.Area = input.Area
			c.Season = normalize.Name(input.Season)
			c.ExpectedYield = input.ExpectedYield
			c.Price = input.Price
			c.Description = normalize.Name(input.Description)
			if input.Status != "" {
				c.Status = input.Status
			}
			c.UpdatedAt = time.Now()
			return nil
		}
		return document.ErrNotFound
	})
}

// Delete removes a crop by id. Returns document.ErrNotFound if absent.
func (s *Store) Delete(ctx context.Context, id int) error {
	return s.docs.Update(ctx, func(doc *document.Document) error {
		for i := range doc.Crops {
			if doc.Crops[i].ID == id {
				doc.Crops = append(doc.Crops[:i], doc.Crops[i+1:]...)
				return nil
			}
		}
		return document.ErrNotFound
	})
}

// Totals aggregates area and expected yield over a set of crops.
type Totals struct {
	Count int
	Area  float64
	Yield float64
}

// Sum computes the aggregate totals for the given crops.
func Sum(crops []models.Crop) Totals {
	var t Totals
	for _, c := range crops {
		t.Count++
		t.Area += c.Area
		t.Yield += c.ExpectedYield
	}
	return t
}

func sortNewestFirst(crops []models.Crop) {
	sort.Slice(crops, func(i, j int) bool {
		if crops[i].CreatedAt.Equal(crops[j].CreatedAt) {
			return crops[i].ID > crops[j].ID
		}
		return crops[i].CreatedAt.After(crops[j].CreatedAt)
	})
}
