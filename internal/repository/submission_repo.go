package repository

import (
	"context"
	"errors"
	"fmt"

	"pyforge/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository appends to and reads the immutable code-run audit log.
type SubmissionRepository interface {
	// Append inserts one submission row. The caller supplies the ID so the
	// row can be referenced (archive queue, logs) before the insert returns.
	Append(ctx context.Context, s *model.CodeSubmission) error
	// GetByID returns a submission, or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*model.CodeSubmission, error)
}

type submissionRepo struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepo creates a new SubmissionRepository.
func NewSubmissionRepo(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepo{pool: pool}
}

func (r *submissionRepo) Append(ctx context.Context, s *model.CodeSubmission) error {
	const q = `
        INSERT INTO code_submissions (id, user_id, lesson_id, code, output, error, passed, duration_ms)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q,
		s.ID, s.UserID, s.LessonID, s.Code, s.Output, s.Error, s.Passed, s.DurationMS,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending submission for user %s lesson %s: %w", s.UserID, s.LessonID, err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.CodeSubmission, error) {
	const q = `
        SELECT id, user_id, lesson_id, code, output, error, passed, duration_ms, archived_at, created_at
        FROM code_submissions
        WHERE id = $1
    `
	var s model.CodeSubmission
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.UserID, &s.LessonID, &s.Code, &s.Output, &s.Error, &s.Passed, &s.DurationMS, &s.ArchivedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch submission %s: %w", id, err)
	}
	return &s, nil
}
