package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=tags.go -destination=tags_mock.go -package=services

// TagRepository defines tag persistence.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagService handles tag operations.
type TagService struct {
	repo TagRepository
}

// NewTagService creates a new TagService instance.
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (svc *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return svc.repo.List(ctx)
}

func (svc *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return svc.repo.GetByID(ctx, id)
}

// Create stores a tag under its lowercased, trimmed name.
func (svc *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{
		ID:        uuid.New(),
		Name:      models.NormalizeIdentifier(name),
		CreatedAt: time.Now().UTC(),
	}
	if tag.Name == "" {
		return nil, ErrInvalidInput
	}

	if err := svc.repo.Create(ctx, tag); err != nil {
		logger.FromContext(ctx).Errorw("failed to create tag", "name", tag.Name, "err", err)
		return nil, err
	}
	return tag, nil
}

func (svc *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := svc.repo.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Errorw("failed to delete tag", "tag_id", id, "err", err)
		return err
	}
	return nil
}
