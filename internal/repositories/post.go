package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

const postColumns = `p.id, p.author_id, p.group_id, p.title, p.body, p.created_at, p.updated_at`

// PostRepository handles posts and their tag links
type PostRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostRepository(db *sqlx.DB, txGetter TxGetter) *PostRepository {
	return &PostRepository{db: db, txGetter: txGetter}
}

// List returns posts matching filter, newest first
func (r *PostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	filter.Normalize()

	var (
		where []string
		args  []any
	)
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		where = append(where, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		where = append(where, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if filter.TagID != nil {
		args = append(args, *filter.TagID)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $%d)", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts p`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	ext := executor(ctx, r.db, r.txGetter)

	posts := []models.Post{}
	err := sqlx.SelectContext(ctx, ext, &posts, query, args...)

	logQuery(ctx, query, args, len(posts), err)

	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if err := r.loadTags(ctx, ext, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`
	ext := executor(ctx, r.db, r.txGetter)

	var post models.Post
	err := sqlx.GetContext(ctx, ext, &post, query, id)

	logQuery(ctx, query, []any{id}, post.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	posts := []models.Post{post}
	if err := r.loadTags(ctx, ext, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// Create inserts the post and its tag links
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	const query = `
		INSERT INTO posts (id, author_id, group_id, title, body, created_at, updated_at)
		VALUES (:id, :author_id, :group_id, :title, :body, :created_at, :updated_at)
	`
	ext := executor(ctx, r.db, r.txGetter)

	res, err := sqlx.NamedExecContext(ctx, ext, query, post)

	logQuery(ctx, query, []any{post.ID, post.AuthorID, post.GroupID}, rowsAffected(res), err)

	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return r.linkTags(ctx, ext, post.ID, post.TagIDs)
}

// Update overwrites title and body and replaces the tag links
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	const query = `
		UPDATE posts SET title = :title, body = :body, updated_at = :updated_at
		WHERE id = :id
	`
	ext := executor(ctx, r.db, r.txGetter)

	res, err := sqlx.NamedExecContext(ctx, ext, query, post)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{post.ID}, n, err)

	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}

	const unlink = `DELETE FROM post_tags WHERE post_id = $1`
	res, err = ext.ExecContext(ctx, unlink, post.ID)

	logQuery(ctx, unlink, []any{post.ID}, rowsAffected(res), err)

	if err != nil {
		return fmt.Errorf("unlink post tags: %w", err)
	}
	return r.linkTags(ctx, ext, post.ID, post.TagIDs)
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM posts WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{id}, n, err)

	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *PostRepository) linkTags(ctx context.Context, ext sqlx.ExtContext, postID uuid.UUID, tagIDs []uuid.UUID) error {
	const query = `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, tagID := range tagIDs {
		res, err := ext.ExecContext(ctx, query, postID, tagID)

		logQuery(ctx, query, []any{postID, tagID}, rowsAffected(res), err)

		if err != nil {
			return fmt.Errorf("link post tag: %w", err)
		}
	}
	return nil
}

func (r *PostRepository) loadTags(ctx context.Context, ext sqlx.ExtContext, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].TagIDs = []uuid.UUID{}
	}

	query, args, err := sqlx.In(`SELECT post_id, tag_id FROM post_tags WHERE post_id IN (?) ORDER BY tag_id`, ids)
	if err != nil {
		return err
	}
	query = ext.Rebind(query)

	var links []struct {
		PostID uuid.UUID `db:"post_id"`
		TagID  uuid.UUID `db:"tag_id"`
	}
	err = sqlx.SelectContext(ctx, ext, &links, query, args...)

	logQuery(ctx, query, args, len(links), err)

	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	for _, l := range links {
		i := index[l.PostID]
		posts[i].TagIDs = append(posts[i].TagIDs, l.TagID)
	}
	return nil
}
