package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=tags.go -destination=tags_mock.go -package=handlers

// TagAPI defines the tag operations used by the tag routes.
type TagAPI interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateTagRequest represents the JSON body of a new tag
// swagger:model CreateTagRequest
type CreateTagRequest struct {
	// Tag name, stored lowercase
	// required: true
	// default: golang
	Name string `json:"name" validate:"required,max=64"`
}

// NewListTagsHandler returns every tag.
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func NewListTagsHandler(svc TagAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := svc.List(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// NewGetTagHandler returns a single tag.
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} handlers.ErrorResponse "Tag not found"
// @Router /tags/{id} [get]
func NewGetTagHandler(svc TagAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, tag)
	}
}

// NewCreateTagHandler creates a tag.
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param createTagRequest body handlers.CreateTagRequest true "Tag"
// @Success 201 {object} models.Tag
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 409 {object} handlers.ErrorResponse "Tag already exists"
// @Router /tags [post]
// @Security BearerAuth
func NewCreateTagHandler(svc TagAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTagRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tag)
	}
}

// NewDeleteTagHandler deletes a tag and unlinks it from posts.
// @Summary Delete a tag
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204 "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Tag not found"
// @Router /tags/{id} [delete]
// @Security BearerAuth
func NewDeleteTagHandler(svc TagAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RegisterTagHandlers mounts the tag routes. Reads are public.
func RegisterTagHandlers(r chi.Router, svc TagAPI, auth Middleware) {
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", NewListTagsHandler(svc))
		r.Get("/{id}", NewGetTagHandler(svc))
		r.With(auth).Post("/", NewCreateTagHandler(svc))
		r.With(auth).Delete("/{id}", NewDeleteTagHandler(svc))
	})
}
