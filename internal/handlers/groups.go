package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=groups.go -destination=groups_mock.go -package=handlers

// GroupAPI defines the group operations used by the group routes.
type GroupAPI interface {
	List(ctx context.Context) ([]models.Group, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Group, error)
	Members(ctx context.Context, id uuid.UUID) ([]models.GroupMember, error)
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Group, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, name, description string) (*models.Group, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// GroupRequest represents the JSON body of a created or updated group
// swagger:model GroupRequest
type GroupRequest struct {
	// Group name
	// required: true
	// default: gophers
	Name string `json:"name" validate:"required,max=128"`

	// Description
	// default: Go enthusiasts
	Description string `json:"description" validate:"max=2048"`
}

// NewListGroupsHandler returns every group.
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Router /group [get]
func NewListGroupsHandler(svc GroupAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.List(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

// NewGetGroupHandler returns a single group.
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} handlers.ErrorResponse "Group not found"
// @Router /group/{id} [get]
func NewGetGroupHandler(svc GroupAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		group, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

// NewListMembersHandler returns the members of a group.
// @Summary List group members
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.GroupMember
// @Failure 404 {object} handlers.ErrorResponse "Group not found"
// @Router /group/{id}/members [get]
func NewListMembersHandler(svc GroupAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		members, err := svc.Members(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

// NewCreateGroupHandler creates a group owned by the session user.
// @Summary Create a group
// @Description The creator becomes the owner and first member.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupRequest body handlers.GroupRequest true "Group"
// @Success 201 {object} models.Group
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /group [post]
// @Security BearerAuth
func NewCreateGroupHandler(svc GroupAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req GroupRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		group, err := svc.Create(r.Context(), userID, req.Name, req.Description)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusCreated, group)
	}
}

// NewUpdateGroupHandler renames or redescribes a group.
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param groupRequest body handlers.GroupRequest true "Group"
// @Success 200 {object} models.Group
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Group not found"
// @Router /group/{id} [put]
// @Security BearerAuth
func NewUpdateGroupHandler(svc GroupAPI) http.HandlerFunc {
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

		var req GroupRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		group, err := svc.Update(r.Context(), userID, id, req.Name, req.Description)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

// NewDeleteGroupHandler deletes a group with its posts, members and invitations.
// @Summary Delete a group
// @Tags groups
// @Param id path string true "Group ID"
// @Success 204 "Deleted"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Group not found"
// @Router /group/{id} [delete]
// @Security BearerAuth
func NewDeleteGroupHandler(svc GroupAPI) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RegisterGroupHandlers mounts the group routes.
func RegisterGroupHandlers(r chi.Router, svc GroupAPI, auth, tx Middleware) {
	r.Route("/group", func(r chi.Router) {
		r.Get("/", NewListGroupsHandler(svc))
		r.Get("/{id}", NewGetGroupHandler(svc))
		r.Get("/{id}/members", NewListMembersHandler(svc))
		r.With(auth, tx).Post("/", NewCreateGroupHandler(svc))
		r.With(auth).Put("/{id}", NewUpdateGroupHandler(svc))
		r.With(auth).Delete("/{id}", NewDeleteGroupHandler(svc))
	})
}
