package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag represents a tag row in the database
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Primary key
	Name      string    `json:"name" db:"name"`             // Unique, lowercase
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
