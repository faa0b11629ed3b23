package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// Invitation represents an invitation row in the database
type Invitation struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Primary key
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`     // Group the invitee is invited to
	InviterID uuid.UUID `json:"inviter_id" db:"inviter_id"` // Member who sent the invitation
	InviteeID uuid.UUID `json:"invitee_id" db:"invitee_id"` // Invited user
	Status    string    `json:"status" db:"status"`         // pending, accepted or declined
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
