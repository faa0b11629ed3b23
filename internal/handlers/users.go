package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// UserAccount defines the profile operations used by the user routes.
type UserAccount interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	UpdateProfile(ctx context.Context, user *models.User, upd models.ProfileUpdate) (*models.PublicProfile, error)
	ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error
}

// UpdateProfileRequest represents the JSON body of a profile update.
// Every field overwrites the stored value.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Full name
	// default: John Doe
	FullName string `json:"fullname" validate:"max=255"`

	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3,max=32"`

	// Email; changing it requires a new confirmation
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Date of birth, YYYY-MM-DD
	// default: 1990-01-31
	DOB string `json:"dob" validate:"omitempty,datetime=2006-01-02"`

	// Gender
	Gender string `json:"gender" validate:"max=32"`

	// Address
	Address string `json:"address" validate:"max=512"`
}

// ChangePasswordRequest represents the JSON body of a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"oldPassword" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// loadCurrentUser resolves the session user or writes the error response.
func loadCurrentUser(w http.ResponseWriter, r *http.Request, svc UserAccount) (*models.User, bool) {
	userID, ok := currentUserID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	user, err := svc.GetByID(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return nil, false
	}
	return user, true
}

// NewGetMeHandler returns the profile of the session user.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.PublicProfile
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/me [get]
// @Security BearerAuth
func NewGetMeHandler(svc UserAccount) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := loadCurrentUser(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, user.PublicProfile())
	}
}

// NewGetUserHandler returns the public profile of any user.
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.PublicProfile
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func NewGetUserHandler(svc UserAccount) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		profile, err := svc.GetPublicProfile(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// NewUpdateMeHandler overwrites the profile of the session user.
// @Summary Update own profile
// @Description Overwrites every profile field. A new email is unverified until confirmed.
// @Tags users
// @Accept json
// @Produce json
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Profile"
// @Success 200 {object} models.PublicProfile
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already in use"
// @Router /users/me [put]
// @Security BearerAuth
func NewUpdateMeHandler(svc UserAccount) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		var dob *time.Time
		if req.DOB != "" {
			parsed, err := time.Parse(time.DateOnly, req.DOB)
			if err != nil {
				writeErrorMessage(w, http.StatusBadRequest, "invalid dob")
				return
			}
			dob = &parsed
		}

		user, ok := loadCurrentUser(w, r, svc)
		if !ok {
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), user, models.ProfileUpdate{
			FullName: req.FullName,
			Username: req.Username,
			Email:    req.Email,
			DOB:      dob,
			Gender:   req.Gender,
			Address:  req.Address,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// NewChangePasswordHandler replaces the password of the session user.
// @Summary Change password
// @Tags users
// @Accept json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Passwords"
// @Success 204 "Password changed"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Wrong current password"
// @Router /users/me/password [put]
// @Security BearerAuth
func NewChangePasswordHandler(svc UserAccount) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		user, ok := loadCurrentUser(w, r, svc)
		if !ok {
			return
		}

		if err := svc.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RegisterUserHandlers mounts the user routes behind auth
func RegisterUserHandlers(r chi.Router, svc UserAccount, auth Middleware) {
	r.Route("/users", func(r chi.Router) {
		r.Use(auth)
		r.Get("/me", NewGetMeHandler(svc))
		r.Put("/me", NewUpdateMeHandler(svc))
		r.Put("/me/password", NewChangePasswordHandler(svc))
		r.Get("/{id}", NewGetUserHandler(svc))
	})
}
