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

// TagRepository handles tag reads and writes
type TagRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTagRepository(db *sqlx.DB, txGetter TxGetter) *TagRepository {
	return &TagRepository{db: db, txGetter: txGetter}
}

// List returns all tags ordered by name
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags ORDER BY name`

	tags := []models.Tag{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &tags, query)

	logQuery(ctx, query, nil, len(tags), err)

	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags WHERE id = $1`

	var tag models.Tag
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &tag, query, id)

	logQuery(ctx, query, []any{id}, tag, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

// Create inserts a tag; a taken name yields ErrAlreadyExists
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	const query = `INSERT INTO tags (id, name, created_at) VALUES ($1, $2, $3)`
	args := []any{tag.ID, tag.Name, tag.CreatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	logQuery(ctx, query, args, rowsAffected(res), err)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrAlreadyExists
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tags WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{id}, n, err)

	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

// CountExisting returns how many of ids are present in the tags table
func (r *TagRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ext := executor(ctx, r.db, r.txGetter)
	query, args, err := sqlx.In(`SELECT COUNT(DISTINCT id) FROM tags WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	query = ext.Rebind(query)

	var count int
	err = sqlx.GetContext(ctx, ext, &count, query, args...)

	logQuery(ctx, query, args, count, err)

	if err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}
	return count, nil
}
