package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=invitations.go -destination=invitations_mock.go -package=handlers

// InvitationAPI defines the invitation operations used by the invitation routes.
type InvitationAPI interface {
	Create(ctx context.Context, inviterID, groupID, inviteeID uuid.UUID) (*models.Invitation, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error)
	Accept(ctx context.Context, userID, id uuid.UUID) (*models.Invitation, error)
	Decline(ctx context.Context, userID, id uuid.UUID) (*models.Invitation, error)
}

// InvitationRequest represents the JSON body of a new invitation
// swagger:model InvitationRequest
type InvitationRequest struct {
	// Group to invite into
	// required: true
	GroupID uuid.UUID `json:"groupId" validate:"required"`

	// Invited user
	// required: true
	InviteeID uuid.UUID `json:"inviteeId" validate:"required"`
}

// NewCreateInvitationHandler invites a user into a group of the session user.
// @Summary Invite a user
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitationRequest body handlers.InvitationRequest true "Invitation"
// @Success 201 {object} models.Invitation
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 403 {object} handlers.ErrorResponse "Not a member of the group"
// @Failure 404 {object} handlers.ErrorResponse "Group or user not found"
// @Failure 409 {object} handlers.ErrorResponse "Already a member or already invited"
// @Router /invitations [post]
// @Security BearerAuth
func NewCreateInvitationHandler(svc InvitationAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req InvitationRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		inv, err := svc.Create(r.Context(), userID, req.GroupID, req.InviteeID)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusCreated, inv)
	}
}

// NewListInvitationsHandler returns the invitations addressed to the session user.
// @Summary List my invitations
// @Tags invitations
// @Produce json
// @Success 200 {array} models.Invitation
// @Router /invitations [get]
// @Security BearerAuth
func NewListInvitationsHandler(svc InvitationAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		invs, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, invs)
	}
}

type resolveFunc func(ctx context.Context, userID, id uuid.UUID) (*models.Invitation, error)

func newResolveInvitationHandler(resolve resolveFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		inv, err := resolve(r.Context(), userID, id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}

// NewAcceptInvitationHandler accepts a pending invitation and joins the group.
// @Summary Accept an invitation
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} models.Invitation
// @Failure 403 {object} handlers.ErrorResponse "Not the invitee"
// @Failure 404 {object} handlers.ErrorResponse "Invitation not found"
// @Failure 409 {object} handlers.ErrorResponse "Invitation already resolved"
// @Router /invitations/{id}/accept [post]
// @Security BearerAuth
func NewAcceptInvitationHandler(svc InvitationAPI) http.HandlerFunc {
	return newResolveInvitationHandler(svc.Accept)
}

// NewDeclineInvitationHandler declines a pending invitation.
// @Summary Decline an invitation
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} models.Invitation
// @Failure 403 {object} handlers.ErrorResponse "Not the invitee"
// @Failure 404 {object} handlers.ErrorResponse "Invitation not found"
// @Failure 409 {object} handlers.ErrorResponse "Invitation already resolved"
// @Router /invitations/{id}/decline [post]
// @Security BearerAuth
func NewDeclineInvitationHandler(svc InvitationAPI) http.HandlerFunc {
	return newResolveInvitationHandler(svc.Decline)
}

// RegisterInvitationHandlers mounts the invitation routes, all behind auth.
func RegisterInvitationHandlers(r chi.Router, svc InvitationAPI, auth, tx Middleware) {
	r.Route("/invitations", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", NewListInvitationsHandler(svc))
		r.Post("/", NewCreateInvitationHandler(svc))
		r.With(tx).Post("/{id}/accept", NewAcceptInvitationHandler(svc))
		r.Post("/{id}/decline", NewDeclineInvitationHandler(svc))
	})
}
