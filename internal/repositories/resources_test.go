package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txKey struct{}

func testTxGetter(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

func TestPeerRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	tags := NewTagRepository(db, testTxGetter)
	posts := NewPostRepository(db, testTxGetter)
	groups := NewGroupRepository(db, testTxGetter)
	invitations := NewInvitationRepository(db, testTxGetter)

	now := time.Now().UTC().Truncate(time.Millisecond)
	owner, member, outsider := uuid.New(), uuid.New(), uuid.New()

	golang := &models.Tag{ID: uuid.New(), Name: "golang", CreatedAt: now}
	sqlTag := &models.Tag{ID: uuid.New(), Name: "sql", CreatedAt: now}

	t.Run("Tags", func(t *testing.T) {
		require.NoError(t, tags.Create(ctx, golang))
		require.NoError(t, tags.Create(ctx, sqlTag))

		err := tags.Create(ctx, &models.Tag{ID: uuid.New(), Name: "golang", CreatedAt: now})
		assert.ErrorIs(t, err, services.ErrAlreadyExists)

		list, err := tags.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "golang", list[0].Name)

		got, err := tags.GetByID(ctx, sqlTag.ID)
		require.NoError(t, err)
		assert.Equal(t, "sql", got.Name)

		count, err := tags.CountExisting(ctx, []uuid.UUID{golang.ID, sqlTag.ID, uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		_, err = tags.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	group := &models.Group{ID: uuid.New(), Name: "gophers", OwnerID: owner, CreatedAt: now, UpdatedAt: now}

	t.Run("Group create and membership in one transaction", func(t *testing.T) {
		tx, err := db.Beginx()
		require.NoError(t, err)
		txCtx := context.WithValue(ctx, txKey{}, tx)

		require.NoError(t, groups.Create(txCtx, group))
		require.NoError(t, groups.AddMember(txCtx, group.ID, owner))
		require.NoError(t, tx.Commit())

		isMember, err := groups.IsMember(ctx, group.ID, owner)
		require.NoError(t, err)
		assert.True(t, isMember)

		assert.ErrorIs(t, groups.AddMember(ctx, group.ID, owner), services.ErrAlreadyExists)
	})

	t.Run("Rolled back group is not visible", func(t *testing.T) {
		tx, err := db.Beginx()
		require.NoError(t, err)
		txCtx := context.WithValue(ctx, txKey{}, tx)

		ghost := &models.Group{ID: uuid.New(), Name: "ghost", OwnerID: owner, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, groups.Create(txCtx, ghost))
		require.NoError(t, tx.Rollback())

		_, err = groups.GetByID(ctx, ghost.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("Group update and list", func(t *testing.T) {
		group.Description = "all about go"
		group.UpdatedAt = time.Now().UTC()
		require.NoError(t, groups.Update(ctx, group))

		got, err := groups.GetByID(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "all about go", got.Description)

		list, err := groups.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	var invitation *models.Invitation

	t.Run("Invitations", func(t *testing.T) {
		invitation = &models.Invitation{
			ID: uuid.New(), GroupID: group.ID, InviterID: owner, InviteeID: member,
			Status: models.InvitationPending, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, invitations.Create(ctx, invitation))

		dup := *invitation
		dup.ID = uuid.New()
		assert.ErrorIs(t, invitations.Create(ctx, &dup), services.ErrAlreadyExists)

		mine, err := invitations.ListByInvitee(ctx, member)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, models.InvitationPending, mine[0].Status)

		require.NoError(t, invitations.UpdateStatus(ctx, invitation.ID, models.InvitationAccepted))
		require.NoError(t, groups.AddMember(ctx, group.ID, member))

		got, err := invitations.GetByID(ctx, invitation.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvitationAccepted, got.Status)

		assert.ErrorIs(t, invitations.UpdateStatus(ctx, invitation.ID, models.InvitationDeclined), services.ErrNotFound)

		members, err := groups.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	var post *models.Post

	t.Run("Posts", func(t *testing.T) {
		post = &models.Post{
			ID: uuid.New(), AuthorID: member, GroupID: &group.ID,
			Title: "hello", Body: "first post", TagIDs: []uuid.UUID{golang.ID},
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, posts.Create(ctx, post))

		other := &models.Post{
			ID: uuid.New(), AuthorID: outsider, Body: "standalone",
			CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
		}
		require.NoError(t, posts.Create(ctx, other))

		got, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{golang.ID}, got.TagIDs)
		require.NotNil(t, got.GroupID)
		assert.Equal(t, group.ID, *got.GroupID)

		all, err := posts.List(ctx, models.PostFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, other.ID, all[0].ID)
		assert.Empty(t, all[0].TagIDs)

		byTag, err := posts.List(ctx, models.PostFilter{TagID: &golang.ID})
		require.NoError(t, err)
		require.Len(t, byTag, 1)
		assert.Equal(t, post.ID, byTag[0].ID)

		byGroup, err := posts.List(ctx, models.PostFilter{GroupID: &group.ID, AuthorID: &member})
		require.NoError(t, err)
		assert.Len(t, byGroup, 1)

		paged, err := posts.List(ctx, models.PostFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, post.ID, paged[0].ID)
	})

	t.Run("Post update replaces tags", func(t *testing.T) {
		post.Title = "hello again"
		post.TagIDs = []uuid.UUID{sqlTag.ID}
		post.UpdatedAt = time.Now().UTC()
		require.NoError(t, posts.Update(ctx, post))

		got, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello again", got.Title)
		assert.Equal(t, []uuid.UUID{sqlTag.ID}, got.TagIDs)
	})

	t.Run("Deletes", func(t *testing.T) {
		require.NoError(t, posts.Delete(ctx, post.ID))
		assert.ErrorIs(t, posts.Delete(ctx, post.ID), services.ErrNotFound)

		require.NoError(t, tags.Delete(ctx, golang.ID))
		assert.ErrorIs(t, tags.Delete(ctx, golang.ID), services.ErrNotFound)

		require.NoError(t, groups.Delete(ctx, group.ID))
		_, err := invitations.GetByID(ctx, invitation.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
