package models

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a group row in the database
type Group struct {
	ID          uuid.UUID `json:"id" db:"id"`                   // Primary key
	Name        string    `json:"name" db:"name"`               // Display name
	Description string    `json:"description" db:"description"` // Free-form description
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`       // Creator, may edit and delete
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

// GroupMember represents a group_members row in the database
type GroupMember struct {
	GroupID  uuid.UUID `json:"group_id" db:"group_id"`   // Group
	UserID   uuid.UUID `json:"user_id" db:"user_id"`     // Member
	JoinedAt time.Time `json:"joined_at" db:"joined_at"` // Membership start
}
