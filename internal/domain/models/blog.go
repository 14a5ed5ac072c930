// internal/domain/models/blog.go
package models

import "time"

// Blog is an informational post published by an administrator.
// Posts are read-only after creation except for deletion.
//
// Author is a soft reference (username), like Crop.Farmer.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultBlogCategory is used when the publish form leaves category blank.
const DefaultBlogCategory = "Farming Tips"
