package repository

import (
	"context"
	"errors"
	"fmt"

	"pyforge/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository defines methods for accessing user profiles.
type UserRepository interface {
	// UpsertUser creates the profile on first login and refreshes the synced
	// fields on subsequent logins. The plan and counters are never touched
	// here.
	UpsertUser(ctx context.Context, u *model.User) error
	// GetUserByID returns the user, or nil when no profile exists.
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository.
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) UpsertUser(ctx context.Context, u *model.User) error {
	const q = `
        INSERT INTO users (user_id, name, email, avatar_url)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET name = EXCLUDED.name,
            email = EXCLUDED.email,
            avatar_url = EXCLUDED.avatar_url,
            updated_at = NOW()
        RETURNING user_id, name, email, avatar_url, plan, lessons_completed, last_active_at, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, u.UserID, u.Name, u.Email, u.AvatarURL).Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.AvatarURL,
		&u.Plan,
		&u.LessonsCompleted,
		&u.LastActiveAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting profile for user %s: %w", u.UserID, err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	const q = `
        SELECT user_id, name, email, avatar_url, plan, lessons_completed, last_active_at, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `
	var u model.User
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.AvatarURL,
		&u.Plan,
		&u.LessonsCompleted,
		&u.LastActiveAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	return &u, nil
}
