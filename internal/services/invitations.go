package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=invitations.go -destination=invitations_mock.go -package=services

// InvitationRepository defines invitation persistence.
type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	ListByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]models.Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// GroupMembership is the part of the group store invitations need.
type GroupMembership interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
}

// InvitationService handles group invitations.
type InvitationService struct {
	repo   InvitationRepository
	groups GroupMembership
	users  UserReader
}

// NewInvitationService creates a new InvitationService instance.
func NewInvitationService(repo InvitationRepository, groups GroupMembership, users UserReader) *InvitationService {
	return &InvitationService{repo: repo, groups: groups, users: users}
}

// Create invites inviteeID into groupID on behalf of a member.
func (svc *InvitationService) Create(ctx context.Context, inviterID, groupID, inviteeID uuid.UUID) (*models.Invitation, error) {
	log := logger.FromContext(ctx)

	if inviterID == inviteeID {
		return nil, fmt.Errorf("cannot invite yourself: %w", ErrInvalidInput)
	}

	if _, err := svc.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := svc.users.GetByID(ctx, inviteeID); err != nil {
		return nil, err
	}

	member, err := svc.groups.IsMember(ctx, groupID, inviterID)
	if err != nil {
		return nil, err
	}
	if !member {
		log.Errorw("inviter is not a group member", "group_id", groupID, "user_id", inviterID)
		return nil, ErrForbidden
	}

	member, err = svc.groups.IsMember(ctx, groupID, inviteeID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, fmt.Errorf("user is already a member: %w", ErrAlreadyExists)
	}

	now := time.Now().UTC()
	inv := &models.Invitation{
		ID:        uuid.New(),
		GroupID:   groupID,
		InviterID: inviterID,
		InviteeID: inviteeID,
		Status:    models.InvitationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.repo.Create(ctx, inv); err != nil {
		log.Errorw("failed to create invitation", "group_id", groupID, "err", err)
		return nil, err
	}
	return inv, nil
}

// ListMine returns the invitations addressed to userID.
func (svc *InvitationService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error) {
	return svc.repo.ListByInvitee(ctx, userID)
}

// Accept marks the invitation accepted and adds the invitee to the group.
// Both writes must share the request transaction.
func (svc *InvitationService) Accept(ctx context.Context, userID, id uuid.UUID) (*models.Invitation, error) {
	inv, err := svc.resolve(ctx, userID, id, models.InvitationAccepted)
	if err != nil {
		return nil, err
	}

	if err := svc.groups.AddMember(ctx, inv.GroupID, userID); err != nil && !errors.Is(err, ErrAlreadyExists) {
		logger.FromContext(ctx).Errorw("failed to add member", "group_id", inv.GroupID, "err", err)
		return nil, err
	}
	return inv, nil
}

// Decline marks the invitation declined.
func (svc *InvitationService) Decline(ctx context.Context, userID, id uuid.UUID) (*models.Invitation, error) {
	return svc.resolve(ctx, userID, id, models.InvitationDeclined)
}

func (svc *InvitationService) resolve(ctx context.Context, userID, id uuid.UUID, status string) (*models.Invitation, error) {
	log := logger.FromContext(ctx)

	inv, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.InviteeID != userID {
		log.Errorw("invitation resolved by non-invitee", "invitation_id", id, "user_id", userID)
		return nil, ErrForbidden
	}
	if inv.Status != models.InvitationPending {
		return nil, fmt.Errorf("invitation already %s: %w", inv.Status, ErrAlreadyExists)
	}

	if err := svc.repo.UpdateStatus(ctx, id, status); err != nil {
		log.Errorw("failed to update invitation", "invitation_id", id, "err", err)
		return nil, err
	}
	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	return inv, nil
}
