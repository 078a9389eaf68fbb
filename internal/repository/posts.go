package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository defines methods for accessing posts and their discussion.
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id, creatorAddress string) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	ListByCreator(ctx context.Context, creatorAddress string) ([]model.Post, error)
	ListPublic(ctx context.Context, category string, limit int) ([]model.Post, error)
	IncrementLikes(ctx context.Context, id string) error

	InsertComment(ctx context.Context, c *model.Comment) error
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
	CountCommentsForCreatorSince(ctx context.Context, creatorAddress string, since time.Time) (int, error)
}

type postRepo struct {
	pool *pgxpool.Pool
}

// NewPostRepo creates a new PostRepository.
func NewPostRepo(pool *pgxpool.Pool) PostRepository {
	return &postRepo{pool: pool}
}

func (r *postRepo) Create(ctx context.Context, p *model.Post) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin post create: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
        INSERT INTO posts (id, creator_address, title, content, teaser, image_url, video_url, min_tier, is_public, likes, category, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, NOW())
    `
	if _, err := tx.Exec(ctx, q, p.ID, p.CreatorAddress, p.Title, p.Content, p.Teaser, p.ImageURL, p.VideoURL, p.MinTier, p.IsPublic, p.Category); err != nil {
		return fmt.Errorf("insert post for %s: %w", p.CreatorAddress, err)
	}
	for _, tag := range p.Hashtags {
		if _, err := tx.Exec(ctx, `INSERT INTO post_hashtags (post_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`, p.ID, tag); err != nil {
			return fmt.Errorf("insert hashtag %s: %w", tag, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *postRepo) Update(ctx context.Context, p *model.Post) error {
	const q = `
        UPDATE posts
        SET title = $3, content = $4, teaser = $5, image_url = $6, video_url = $7, min_tier = $8, is_public = $9, category = $10
        WHERE id = $1 AND creator_address = $2
    `
	tag, err := r.pool.Exec(ctx, q, p.ID, p.CreatorAddress, p.Title, p.Content, p.Teaser, p.ImageURL, p.VideoURL, p.MinTier, p.IsPublic, p.Category)
	if err != nil {
		return fmt.Errorf("update post %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id, creatorAddress string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND creator_address = $2`, id, creatorAddress)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	row := r.pool.QueryRow(ctx, postSelect+` WHERE id = $1`, id)
	var p model.Post
	if err := scanPost(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) ListByCreator(ctx context.Context, creatorAddress string) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx, postSelect+` WHERE creator_address = $1 ORDER BY created_at DESC`, model.NormalizeAddress(creatorAddress))
	if err != nil {
		return nil, fmt.Errorf("list posts for %s: %w", creatorAddress, err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *postRepo) ListPublic(ctx context.Context, category string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	q := postSelect + ` WHERE (is_public OR min_tier = 0)`
	args := []any{limit}
	if category != "" {
		q += ` AND category = $2`
		args = append(args, category)
	}
	q += ` ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *postRepo) IncrementLikes(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("like post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) InsertComment(ctx context.Context, c *model.Comment) error {
	const q = `
        INSERT INTO comments (id, post_id, author_address, body, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `
	if _, err := r.pool.Exec(ctx, q, c.ID, c.PostID, c.AuthorAddress, c.Body); err != nil {
		return fmt.Errorf("insert comment on %s: %w", c.PostID, err)
	}
	return nil
}

func (r *postRepo) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	const q = `
        SELECT id, post_id, author_address, body, created_at
        FROM comments
        WHERE post_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for %s: %w", postID, err)
	}
	defer rows.Close()

	var cs []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorAddress, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// CountCommentsForCreatorSince feeds the dashboard's active-discussions
// widget.
func (r *postRepo) CountCommentsForCreatorSince(ctx context.Context, creatorAddress string, since time.Time) (int, error) {
	const q = `
        SELECT COUNT(*)
        FROM comments c
        JOIN posts p ON p.id = c.post_id
        WHERE p.creator_address = $1 AND c.created_at >= $2
    `
	var n int
	if err := r.pool.QueryRow(ctx, q, model.NormalizeAddress(creatorAddress), since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments for %s: %w", creatorAddress, err)
	}
	return n, nil
}

const postSelect = `
        SELECT id, creator_address, title, content, teaser, image_url, video_url, min_tier, is_public, likes, category, created_at
        FROM posts
`

func scanPost(row pgx.Row, p *model.Post) error {
	err := row.Scan(&p.ID, &p.CreatorAddress, &p.Title, &p.Content, &p.Teaser, &p.ImageURL, &p.VideoURL, &p.MinTier, &p.IsPublic, &p.Likes, &p.Category, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("scan post: %w", err)
	}
	return nil
}

func collectPosts(rows pgx.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
