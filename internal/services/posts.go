package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=services

// PostRepository defines post persistence.
type PostRepository interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagCounter reports how many of the given tag ids exist.
type TagCounter interface {
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}

// MembershipChecker reports group membership.
type MembershipChecker interface {
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	GroupID *uuid.UUID
	Title   string
	Body    string
	TagIDs  []uuid.UUID
}

// PostService handles post operations.
type PostService struct {
	repo    PostRepository
	tags    TagCounter
	members MembershipChecker
}

// NewPostService creates a new PostService instance.
func NewPostService(repo PostRepository, tags TagCounter, members MembershipChecker) *PostService {
	return &PostService{repo: repo, tags: tags, members: members}
}

func (svc *PostService) List(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	filter.Normalize()
	return svc.repo.List(ctx, filter)
}

func (svc *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return svc.repo.GetByID(ctx, id)
}

// Create publishes a post. Posting into a group requires membership.
func (svc *PostService) Create(ctx context.Context, authorID uuid.UUID, in PostInput) (*models.Post, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(in.Body) == "" {
		return nil, ErrInvalidInput
	}

	if in.GroupID != nil {
		member, err := svc.members.IsMember(ctx, *in.GroupID, authorID)
		if err != nil {
			return nil, err
		}
		if !member {
			log.Errorw("author is not a group member", "group_id", *in.GroupID, "user_id", authorID)
			return nil, ErrForbidden
		}
	}

	tagIDs, err := svc.checkTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GroupID:   in.GroupID,
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		TagIDs:    tagIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.repo.Create(ctx, post); err != nil {
		log.Errorw("failed to create post", "err", err)
		return nil, err
	}
	return post, nil
}

// Update overwrites title, body and tags. Only the author may update.
func (svc *PostService) Update(ctx context.Context, authorID, postID uuid.UUID, in PostInput) (*models.Post, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(in.Body) == "" {
		return nil, ErrInvalidInput
	}

	post, err := svc.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		log.Errorw("post update by non-author", "post_id", postID, "user_id", authorID)
		return nil, ErrForbidden
	}

	tagIDs, err := svc.checkTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Body = in.Body
	post.TagIDs = tagIDs
	post.UpdatedAt = time.Now().UTC()

	if err := svc.repo.Update(ctx, post); err != nil {
		log.Errorw("failed to update post", "post_id", postID, "err", err)
		return nil, err
	}
	return post, nil
}

func (svc *PostService) Delete(ctx context.Context, authorID, postID uuid.UUID) error {
	post, err := svc.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		logger.FromContext(ctx).Errorw("post delete by non-author", "post_id", postID, "user_id", authorID)
		return ErrForbidden
	}
	return svc.repo.Delete(ctx, postID)
}

// checkTags deduplicates ids and fails with ErrInvalidInput when any is unknown.
func (svc *PostService) checkTags(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	count, err := svc.tags.CountExisting(ctx, unique)
	if err != nil {
		return nil, err
	}
	if count != len(unique) {
		logger.FromContext(ctx).Errorw("unknown tags", "requested", len(unique), "found", count)
		return nil, ErrInvalidInput
	}
	return unique, nil
}
