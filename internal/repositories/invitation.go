package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

const invitationColumns = `id, group_id, inviter_id, invitee_id, status, created_at, updated_at`

// InvitationRepository handles group invitations
type InvitationRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewInvitationRepository(db *sqlx.DB, txGetter TxGetter) *InvitationRepository {
	return &InvitationRepository{db: db, txGetter: txGetter}
}

// Create inserts a pending invitation; a second pending one for the same
// group and invitee yields ErrAlreadyExists
func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	const query = `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES (:id, :group_id, :inviter_id, :invitee_id, :status, :created_at, :updated_at)
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, inv)

	logQuery(ctx, query, []any{inv.ID, inv.GroupID, inv.InviterID, inv.InviteeID}, rowsAffected(res), err)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrAlreadyExists
		}
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	const query = `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`

	var inv models.Invitation
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &inv, query, id)

	logQuery(ctx, query, []any{id}, inv.Status, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// ListByInvitee returns the invitations addressed to a user, newest first
func (r *InvitationRepository) ListByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]models.Invitation, error) {
	const query = `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE invitee_id = $1
		ORDER BY created_at DESC, id
	`

	invitations := []models.Invitation{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &invitations, query, inviteeID)

	logQuery(ctx, query, []any{inviteeID}, len(invitations), err)

	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

// UpdateStatus moves a pending invitation to status. A missing or
// already resolved invitation yields ErrNotFound.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	const query = `
		UPDATE invitations SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`
	args := []any{id, status, time.Now().UTC()}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	n := rowsAffected(res)

	logQuery(ctx, query, args, n, err)

	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}
