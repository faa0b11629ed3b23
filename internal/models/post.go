package models

import (
	"time"

	"github.com/google/uuid"
)

// Post pagination bounds.
const (
	DefaultPostLimit = 20
	MaxPostLimit     = 100
)

// Post represents a post row in the database
type Post struct {
	ID        uuid.UUID   `json:"id" db:"id"`                 // Primary key
	AuthorID  uuid.UUID   `json:"author_id" db:"author_id"`   // Owner of the post
	GroupID   *uuid.UUID  `json:"group_id" db:"group_id"`     // Optional group the post belongs to
	Title     string      `json:"title" db:"title"`           // Title
	Body      string      `json:"body" db:"body"`             // Content
	TagIDs    []uuid.UUID `json:"tag_ids" db:"-"`             // Linked tags, stored in post_tags
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// PostFilter narrows a post listing. Nil fields do not filter.
type PostFilter struct {
	AuthorID *uuid.UUID
	GroupID  *uuid.UUID
	TagID    *uuid.UUID
	Limit    int
	Offset   int
}

// Normalize clamps Limit and Offset into their allowed ranges.
func (f *PostFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultPostLimit
	}
	if f.Limit > MaxPostLimit {
		f.Limit = MaxPostLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
