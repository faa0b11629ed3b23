package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/password"
)

// DefaultAvatar is assigned to every new user.
const DefaultAvatar = "/uploads/avatarHolder.png"

// User represents a user record in the store
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`                  // Primary key, immutable
	Username     string     `json:"username" db:"username"`      // Unique, lowercase
	Email        string     `json:"email" db:"email"`            // Unique, lowercase
	FullName     string     `json:"full_name" db:"full_name"`    // Display name
	Avatar       string     `json:"avatar" db:"avatar"`          // Avatar URL
	Gender       string     `json:"gender" db:"gender"`          // Free-form
	Address      string     `json:"address" db:"address"`        // Free-form
	DOB          *time.Time `json:"dob,omitempty" db:"dob"`      // Date of birth
	PasswordHash string     `json:"-" db:"password_hash"`        // PBKDF2 hash, hex
	PasswordSalt string     `json:"-" db:"password_salt"`        // Salt, hex
	Verified     bool       `json:"verified" db:"verified"`      // Email confirmed
	EmailToken   string     `json:"-" db:"email_token"`          // Pending confirmation token
	Since        time.Time  `json:"since" db:"since"`            // Creation timestamp
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`  // Last update timestamp
}

// NormalizeIdentifier trims and lowercases a username or email.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SetPassword replaces the credential with a fresh salt and the matching hash.
func (u *User) SetPassword(plaintext string) error {
	hash, salt, err := password.Hash(plaintext)
	if err != nil {
		return err
	}
	u.PasswordHash, u.PasswordSalt = hash, salt
	return nil
}

// ValidPassword reports whether plaintext matches the stored credential.
func (u *User) ValidPassword(plaintext string) bool {
	return password.Verify(plaintext, u.PasswordHash, u.PasswordSalt)
}

// DisplayName is the name used to address the user in emails.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// PublicProfile is the only user representation sent to clients.
// swagger:model PublicProfile
type PublicProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Verified bool      `json:"verified"`
	FullName string    `json:"fullName"`
	Gender   string    `json:"gender"`
	Address  string    `json:"address"`
	Avatar   string    `json:"avatar"`
}

// PublicProfile projects u onto the fields safe to expose.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Verified: u.Verified,
		FullName: u.FullName,
		Gender:   u.Gender,
		Address:  u.Address,
		Avatar:   u.Avatar,
	}
}

// AuthResponse is returned after registration, login and verification.
// swagger:model AuthResponse
type AuthResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Verified bool      `json:"verified"`
	Token    string    `json:"token"`
}

// ProfileUpdate carries every overwritable profile field.
// Fields left empty become empty on the user.
type ProfileUpdate struct {
	FullName string
	Username string
	Email    string
	DOB      *time.Time
	Gender   string
	Address  string
}
