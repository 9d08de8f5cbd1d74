package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/cyber-thread/internal/domain"
)

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

const userColumns = `id, username, email, password_hash, bio, profile_url, created_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	query := `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	args := []any{user.Username, user.Email, user.PasswordHash, now}

	var id int64
	if r.dialect.Returning {
		err := r.db.QueryRowContext(ctx, r.dialect.bind(query+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			if isUnique(r.dialect, err) {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("insert user: %w", err)
		}
	} else {
		result, err := r.db.ExecContext(ctx, r.dialect.bind(query), args...)
		if err != nil {
			if isUnique(r.dialect, err) {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("insert user: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.dialect.bind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.dialect.bind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateBio(ctx context.Context, id int64, bio string) error {
	return r.updateColumn(ctx, id, "bio", bio)
}

func (r *UserRepository) UpdateProfileURL(ctx context.Context, id int64, url string) error {
	return r.updateColumn(ctx, id, "profile_url", url)
}

// updateColumn sets a single nullable text column. column is always a
// constant from this file, never user input.
func (r *UserRepository) updateColumn(ctx context.Context, id int64, column, value string) error {
	result, err := r.db.ExecContext(ctx,
		r.dialect.bind(`UPDATE users SET `+column+` = ? WHERE id = ?`),
		nullString(value), id,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	return expectRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user       domain.User
		bio        sql.NullString
		profileURL sql.NullString
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &bio, &profileURL, scanTime{&user.CreatedAt})
	if err != nil {
		return nil, err
	}
	user.Bio = bio.String
	user.ProfileURL = profileURL.String
	return &user, nil
}

// expectRow maps an UPDATE/DELETE that touched nothing to ErrNotFound.
func expectRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
