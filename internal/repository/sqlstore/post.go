package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/cyber-thread/internal/domain"
)

// PostRepository implements domain.PostRepository.
type PostRepository struct {
	db      *sql.DB
	dialect Dialect
}

const postWithAuthorQuery = `
	SELECT p.id, p.user_id, p.content, p.url, p.created_at,
	       u.username, u.email, u.bio, u.created_at
	FROM posts p
	JOIN users u ON p.user_id = u.id`

// Create inserts the post. The caller supplies the ID; CreatedAt defaults
// to now when zero.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		r.dialect.bind(`INSERT INTO posts (id, user_id, content, url, created_at) VALUES (?, ?, ?, ?, ?)`),
		post.ID, post.UserID, post.Content, nullString(post.MediaURL), post.CreatedAt.UTC(),
	)
	if err != nil {
		if isForeignKey(r.dialect, err) {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, post.UserID)
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.PostWithAuthor, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.bind(postWithAuthorQuery+` WHERE p.id = ?`), id)
	post, err := scanPostWithAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query post by id: %w", err)
	}
	return post, nil
}

func (r *PostRepository) ListFeed(ctx context.Context) ([]domain.PostWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, postWithAuthorQuery+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	var posts []domain.PostWithAuthor
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		r.dialect.bind(`SELECT id, user_id, content, url, created_at
		 FROM posts WHERE user_id = ? ORDER BY created_at DESC`), userID)
	if err != nil {
		return nil, fmt.Errorf("query posts by user: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var (
			p   domain.Post
			url sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &url, scanTime{&p.CreatedAt}); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.MediaURL = url.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) UpdateContent(ctx context.Context, id, content string) error {
	result, err := r.db.ExecContext(ctx,
		r.dialect.bind(`UPDATE posts SET content = ? WHERE id = ?`), content, id)
	if err != nil {
		return fmt.Errorf("update post content: %w", err)
	}
	return expectRow(result)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.dialect.bind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return expectRow(result)
}

func scanPostWithAuthor(row rowScanner) (*domain.PostWithAuthor, error) {
	var (
		p   domain.PostWithAuthor
		url sql.NullString
		bio sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Content, &url, scanTime{&p.CreatedAt},
		&p.AuthorUsername, &p.AuthorEmail, &bio, scanTime{&p.AuthorJoined},
	)
	if err != nil {
		return nil, err
	}
	p.MediaURL = url.String
	p.AuthorBio = bio.String
	return &p, nil
}
