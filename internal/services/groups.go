package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=groups.go -destination=groups_mock.go -package=services

// GroupRepository defines group and membership persistence.
type GroupRepository interface {
	List(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error)
}

// GroupService handles group operations.
type GroupService struct {
	repo GroupRepository
}

// NewGroupService creates a new GroupService instance.
func NewGroupService(repo GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

func (svc *GroupService) List(ctx context.Context) ([]models.Group, error) {
	return svc.repo.List(ctx)
}

func (svc *GroupService) Get(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *GroupService) Members(ctx context.Context, id uuid.UUID) ([]models.GroupMember, error) {
	if _, err := svc.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return svc.repo.ListMembers(ctx, id)
}

// Create stores the group and makes its owner the first member.
// Both writes must share the request transaction.
func (svc *GroupService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Group, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	group := &models.Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := svc.repo.Create(ctx, group); err != nil {
		log.Errorw("failed to create group", "err", err)
		return nil, err
	}
	if err := svc.repo.AddMember(ctx, group.ID, ownerID); err != nil {
		log.Errorw("failed to add group owner", "group_id", group.ID, "err", err)
		return nil, err
	}
	return group, nil
}

func (svc *GroupService) Update(ctx context.Context, ownerID, id uuid.UUID, name, description string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	group, err := svc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	group.Name = name
	group.Description = description
	group.UpdatedAt = time.Now().UTC()

	if err := svc.repo.Update(ctx, group); err != nil {
		logger.FromContext(ctx).Errorw("failed to update group", "group_id", id, "err", err)
		return nil, err
	}
	return group, nil
}

func (svc *GroupService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := svc.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}

func (svc *GroupService) owned(ctx context.Context, ownerID, id uuid.UUID) (*models.Group, error) {
	group, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != ownerID {
		logger.FromContext(ctx).Errorw("group change by non-owner", "group_id", id, "user_id", ownerID)
		return nil, ErrForbidden
	}
	return group, nil
}
