package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

// GroupRepository handles groups and their memberships
type GroupRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewGroupRepository(db *sqlx.DB, txGetter TxGetter) *GroupRepository {
	return &GroupRepository{db: db, txGetter: txGetter}
}

func (r *GroupRepository) List(ctx context.Context) ([]models.Group, error) {
	const query = `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM groups
		ORDER BY created_at DESC, id
	`

	groups := []models.Group{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &groups, query)

	logQuery(ctx, query, nil, len(groups), err)

	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	const query = `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &group, query, id)

	logQuery(ctx, query, []any{id}, group.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &group, nil
}

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	const query = `
		INSERT INTO groups (id, name, description, owner_id, created_at, updated_at)
		VALUES (:id, :name, :description, :owner_id, :created_at, :updated_at)
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, group)

	logQuery(ctx, query, []any{group.ID, group.Name, group.OwnerID}, rowsAffected(res), err)

	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	const query = `
		UPDATE groups SET name = :name, description = :description, updated_at = :updated_at
		WHERE id = :id
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, group)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{group.ID, group.Name}, n, err)

	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM groups WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{id}, n, err)

	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

// AddMember inserts a membership; an existing one yields ErrAlreadyExists
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	const query = `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, NOW())`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, groupID, userID)

	logQuery(ctx, query, []any{groupID, userID}, rowsAffected(res), err)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrAlreadyExists
		}
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`

	var member bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &member, query, groupID, userID)

	logQuery(ctx, query, []any{groupID, userID}, member, err)

	if err != nil {
		return false, fmt.Errorf("check group member: %w", err)
	}
	return member, nil
}

func (r *GroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error) {
	const query = `
		SELECT group_id, user_id, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at, user_id
	`

	members := []models.GroupMember{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &members, query, groupID)

	logQuery(ctx, query, []any{groupID}, len(members), err)

	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}
