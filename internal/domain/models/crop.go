// internal/domain/models/crop.go
package models

import "time"

// Crop is a single crop record owned by the farmer that created it.
//
// Farmer is a soft reference: it stores the owning user's username with no
// enforced referential integrity. Renaming or deleting a user does not
// cascade to their crops.
type Crop struct {
	ID            int     `json:"id"`
	CropName      string  `json:"crop_name"`
	CropType      string  `json:"crop_type"`
	Area          float64 `json:"area"`
	Season        string  `json:"season"`
	ExpectedYield float64 `json:"expected_yield"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
	Farmer        string  `json:"farmer"`
	Status        string  `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Crop statuses
const (
	StatusPlanted   = "Planted"
	StatusGrowing   = "Growing"
	StatusHarvested = "Harvested"
	StatusSold      = "Sold"
)

// AllCropStatuses returns all valid crop statuses, in lifecycle order.
func AllCropStatuses() []string {
	return []string{
		StatusPlanted,
		StatusGrowing,
		StatusHarvested,
		StatusSold,
	}
}

// IsValidCropStatus checks if a status is valid.
func IsValidCropStatus(status string) bool {
	for _, s := range AllCropStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
