package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=handlers

// Authenticator defines the account lifecycle operations used by the auth routes.
type Authenticator interface {
	Register(ctx context.Context, in services.NewUser) (*models.AuthResponse, error)
	Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	RequestPasswordReset(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3,max=32"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Full name
	// default: John Doe
	FullName string `json:"fullName" validate:"max=255"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// default: john@example.com
	Identifier string `json:"identifier" validate:"required"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents the JSON body of a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Username or email
	// required: true
	// default: john@example.com
	Identifier string `json:"identifier" validate:"required"`
}

// ResetPasswordRequest represents the JSON body carrying the new password
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// New password
	// required: true
	// default: newsecret123
	Password string `json:"password" validate:"required,min=6"`
}

// MessageResponse is a plain confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// default: ok
	Message string `json:"message"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates an account with a hashed password and mails an email confirmation link.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} models.AuthResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already in use"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func NewRegisterHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := svc.Register(r.Context(), services.NewUser{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Authenticates by username or email and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse "Authenticated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := svc.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewVerifyEmailHandler returns an HTTP handler for email confirmation links.
// @Summary Confirm email
// @Description Marks the email as verified and redirects to the frontend with a session token.
// @Tags auth
// @Param token path string true "Email confirmation token"
// @Success 302 "Redirect to the frontend login page"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email/{token} [get]
func NewVerifyEmailHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := svc.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		http.Redirect(w, r, target, http.StatusFound)
	}
}

// NewForgotPasswordHandler returns an HTTP handler that mails a reset link.
// @Summary Request a password reset
// @Description Always accepted; a reset link is mailed when the identifier names a user.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Identifier"
// @Success 202 {object} handlers.MessageResponse "Accepted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /auth/forgot-password [post]
func NewForgotPasswordHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Identifier); err != nil {
			logger.FromContext(r.Context()).Errorw("password reset request failed", "err", err)
		}

		writeJSON(w, http.StatusAccepted, MessageResponse{
			Message: "If the account exists, a reset link has been sent",
		})
	}
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password.
// @Summary Reset password
// @Description Sets a new password for the user named by a reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Password reset token"
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "New password"
// @Success 200 {object} handlers.MessageResponse "Password updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/resetPassword/{token} [post]
func NewResetPasswordHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password updated"})
	}
}

// RegisterAuthHandlers mounts the account lifecycle routes
func RegisterAuthHandlers(r chi.Router, svc Authenticator) {
	r.Post("/auth/register", NewRegisterHandler(svc))
	r.Post("/auth/login", NewLoginHandler(svc))
	r.Get("/auth/verify-email/{token}", NewVerifyEmailHandler(svc))
	r.Post("/auth/forgot-password", NewForgotPasswordHandler(svc))
	r.Post("/auth/resetPassword/{token}", NewResetPasswordHandler(svc))
}
