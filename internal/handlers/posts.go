package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=handlers

// PostAPI defines the post operations used by the post routes.
type PostAPI interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, authorID uuid.UUID, in services.PostInput) (*models.Post, error)
	Update(ctx context.Context, authorID, postID uuid.UUID, in services.PostInput) (*models.Post, error)
	Delete(ctx context.Context, authorID, postID uuid.UUID) error
}

// PostRequest represents the JSON body of a created or updated post
// swagger:model PostRequest
type PostRequest struct {
	// Group the post is published in; ignored on update
	GroupID *uuid.UUID `json:"groupId"`

	// Title
	// default: Hello
	Title string `json:"title" validate:"max=255"`

	// Content
	// required: true
	// default: First post
	Body string `json:"body" validate:"required"`

	// Tag ids, each must exist
	TagIDs []uuid.UUID `json:"tagIds"`
}

func (req PostRequest) input() services.PostInput {
	return services.PostInput{
		GroupID: req.GroupID,
		Title:   req.Title,
		Body:    req.Body,
		TagIDs:  req.TagIDs,
	}
}

// parsePostFilter reads the author, group, tag, limit and offset query parameters.
func parsePostFilter(q url.Values) (models.PostFilter, error) {
	var f models.PostFilter

	ids := []struct {
		key string
		dst **uuid.UUID
	}{
		{"author", &f.AuthorID},
		{"group", &f.GroupID},
		{"tag", &f.TagID},
	}
	for _, p := range ids {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return f, errors.New("invalid " + p.key)
		}
		*p.dst = &id
	}

	var err error
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return f, errors.New("invalid limit")
		}
	}
	if v := q.Get("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil {
			return f, errors.New("invalid offset")
		}
	}
	return f, nil
}

// NewListPostsHandler returns a page of posts, newest first.
// @Summary List posts
// @Tags posts
// @Produce json
// @Param author query string false "Author ID"
// @Param group query string false "Group ID"
// @Param tag query string false "Tag ID"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Invalid query"
// @Router /posts [get]
func NewListPostsHandler(svc PostAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parsePostFilter(r.URL.Query())
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		posts, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

// NewGetPostHandler returns a single post with its tags.
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func NewGetPostHandler(svc PostAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// NewCreatePostHandler publishes a post as the session user.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param postRequest body handlers.PostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or unknown tag"
// @Failure 403 {object} handlers.ErrorResponse "Not a member of the group"
// @Router /posts [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req PostRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := svc.Create(r.Context(), userID, req.input())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// NewUpdatePostHandler rewrites a post owned by the session user.
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param postRequest body handlers.PostRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or unknown tag"
// @Failure 403 {object} handlers.ErrorResponse "Not the author"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
// @Security BearerAuth
func NewUpdatePostHandler(svc PostAPI) http.HandlerFunc {
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

		var req PostRequest
		if err := decodeRequest(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := svc.Update(r.Context(), userID, id, req.input())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// NewDeletePostHandler removes a post owned by the session user.
// @Summary Delete a post
// @Tags posts
// @Param id path string true "Post ID"
// @Success 204 "Deleted"
// @Failure 403 {object} handlers.ErrorResponse "Not the author"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
// @Security BearerAuth
func NewDeletePostHandler(svc PostAPI) http.HandlerFunc {
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

// RegisterPostHandlers mounts the post routes. Writes that touch post_tags run inside tx.
func RegisterPostHandlers(r chi.Router, svc PostAPI, auth, tx Middleware) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", NewListPostsHandler(svc))
		r.Get("/{id}", NewGetPostHandler(svc))
		r.With(auth, tx).Post("/", NewCreatePostHandler(svc))
		r.With(auth, tx).Put("/{id}", NewUpdatePostHandler(svc))
		r.With(auth).Delete("/{id}", NewDeletePostHandler(svc))
	})
}
