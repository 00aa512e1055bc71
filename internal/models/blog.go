package models

import (
	"time"
)

// Categories is the suggested category set offered to clients. It is not
// enforced server-side; a blog may carry any non-empty category string.
var Categories = []string{"Career", "Finance", "Travel", "Technology", "Lifestyle", "Other"}

// Blog represents a blog post in the Inkwell application.
//
// Author is a denormalized copy of the owning user's name taken at creation
// time. It is never re-joined against users, so a later rename does not
// propagate to existing posts.
type Blog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Category string `gorm:"not null;index" json:"category"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Image    string `json:"image,omitempty"`
	Author   string `gorm:"not null" json:"author"`
	// UserID references the owning user. The store does not enforce the
	// reference; only the owner may mutate the blog.
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
