package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockGroupRepository(ctrl)
	svc := services.NewGroupService(repo)
	ctx := context.Background()
	owner := uuid.New()

	t.Run("owner becomes first member", func(t *testing.T) {
		var created *models.Group
		gomock.InOrder(
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, g *models.Group) error {
					created = g
					return nil
				}),
			repo.EXPECT().AddMember(gomock.Any(), gomock.Any(), owner).DoAndReturn(
				func(ctx context.Context, groupID, userID uuid.UUID) error {
					assert.Equal(t, created.ID, groupID)
					return nil
				}),
		)

		group, err := svc.Create(ctx, owner, " gophers ", "desc")
		require.NoError(t, err)
		assert.Equal(t, "gophers", group.Name)
		assert.Equal(t, owner, group.OwnerID)
	})

	t.Run("membership failure is returned", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().AddMember(gomock.Any(), gomock.Any(), owner).Return(errors.New("db down"))

		_, err := svc.Create(ctx, owner, "gophers", "")
		assert.EqualError(t, err, "db down")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, "  ", "")
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})
}

func TestGroupService_OwnerOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockGroupRepository(ctrl)
	svc := services.NewGroupService(repo)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	group := &models.Group{ID: uuid.New(), Name: "gophers", OwnerID: owner}

	repo.EXPECT().GetByID(gomock.Any(), group.ID).Return(group, nil).AnyTimes()

	_, err := svc.Update(ctx, stranger, group.ID, "new", "")
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, group.ID), services.ErrForbidden)

	repo.EXPECT().Update(gomock.Any(), group).Return(nil)
	updated, err := svc.Update(ctx, owner, group.ID, "renamed", "d")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	repo.EXPECT().Delete(gomock.Any(), group.ID).Return(nil)
	assert.NoError(t, svc.Delete(ctx, owner, group.ID))

	repo.EXPECT().ListMembers(gomock.Any(), group.ID).Return([]models.GroupMember{{GroupID: group.ID, UserID: owner}}, nil)
	members, err := svc.Members(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestGroupService_MembersOfMissingGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockGroupRepository(ctrl)
	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrNotFound)

	_, err := services.NewGroupService(repo).Members(context.Background(), id)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
