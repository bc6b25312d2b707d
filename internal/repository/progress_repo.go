package repository

import (
	"context"
	"errors"
	"fmt"

	"pyforge/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressRepository owns the one-row-per-(user, lesson) progress table and
// the user completion counter that moves with it.
type ProgressRepository interface {
	// SaveCode upserts the in-progress code for a lesson. A row already in
	// completed state keeps that state; saving code never regresses it.
	SaveCode(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error)
	// MarkComplete transitions the row to completed. Idempotent: repeated
	// calls keep the first completed_at and move the user's completion
	// counter exactly once per (user, lesson) pair. The bool reports whether
	// this call was the first transition.
	MarkComplete(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error)
	// GetByUserAndLesson returns the progress row, or nil when none exists.
	GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserProgress, error)
	// GetRecentByUser returns the user's most recently touched progress rows
	// joined to their lesson and project.
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]model.RecentProgress, error)
	// GetByUserAndLessonIDs returns the user's progress for the given lessons
	// in a single query.
	GetByUserAndLessonIDs(ctx context.Context, userID string, lessonIDs []string) ([]model.UserProgress, error)
}

type progressRepo struct {
	pool *pgxpool.Pool
}

// NewProgressRepo creates a new ProgressRepository.
func NewProgressRepo(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepo{pool: pool}
}

func (r *progressRepo) SaveCode(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error) {
	const q = `
        INSERT INTO user_progress (user_id, lesson_id, status, saved_code)
        VALUES ($1, $2, 'in_progress', $3)
        ON CONFLICT (user_id, lesson_id) DO UPDATE
        SET saved_code = EXCLUDED.saved_code,
            status = CASE WHEN user_progress.status = 'completed'
                          THEN user_progress.status
                          ELSE 'in_progress' END,
            updated_at = NOW()
        RETURNING id, user_id, lesson_id, status, saved_code, completed_at, created_at, updated_at
    `
	var p model.UserProgress
	err := r.pool.QueryRow(ctx, q, userID, lessonID, code).Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.SavedCode, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving code for user %s lesson %s: %w", userID, lessonID, err)
	}
	return &p, nil
}

func (r *progressRepo) MarkComplete(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, false, fmt.Errorf("starting transaction for completion: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var p model.UserProgress
	const selectQ = `
        SELECT id, user_id, lesson_id, status, saved_code, completed_at, created_at, updated_at
        FROM user_progress
        WHERE user_id = $1 AND lesson_id = $2
        FOR UPDATE
    `
	err = tx.QueryRow(ctx, selectQ, userID, lessonID).Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.SavedCode, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	switch {
	case err == nil && p.Status == model.ProgressStatusCompleted:
		// Already completed. completed_at keeps its first value and the
		// counter must not move again.
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("committing no-op completion for user %s: %w", userID, err)
		}
		return &p, false, nil

	case err == nil:
		const updateQ = `
            UPDATE user_progress
            SET status = 'completed', completed_at = NOW(), updated_at = NOW()
            WHERE id = $1
            RETURNING status, completed_at, updated_at
        `
		if err := tx.QueryRow(ctx, updateQ, p.ID).Scan(&p.Status, &p.CompletedAt, &p.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("marking lesson %s completed for user %s: %w", lessonID, userID, err)
		}

	case errors.Is(err, pgx.ErrNoRows):
		const insertQ = `
            INSERT INTO user_progress (user_id, lesson_id, status, completed_at)
            VALUES ($1, $2, 'completed', NOW())
            RETURNING id, user_id, lesson_id, status, saved_code, completed_at, created_at, updated_at
        `
		if err := tx.QueryRow(ctx, insertQ, userID, lessonID).Scan(
			&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.SavedCode, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, false, fmt.Errorf("inserting completion of lesson %s for user %s: %w", lessonID, userID, err)
		}

	default:
		return nil, false, fmt.Errorf("loading progress for user %s lesson %s: %w", userID, lessonID, err)
	}

	const counterQ = `
        UPDATE users
        SET lessons_completed = lessons_completed + 1,
            last_active_at = NOW(),
            updated_at = NOW()
        WHERE user_id = $1
    `
	if _, err := tx.Exec(ctx, counterQ, userID); err != nil {
		return nil, false, fmt.Errorf("incrementing completion counter for user %s: %w", userID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("committing completion for user %s: %w", userID, err)
	}
	return &p, true, nil
}

func (r *progressRepo) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserProgress, error) {
	const q = `
        SELECT id, user_id, lesson_id, status, saved_code, completed_at, created_at, updated_at
        FROM user_progress
        WHERE user_id = $1 AND lesson_id = $2
    `
	var p model.UserProgress
	err := r.pool.QueryRow(ctx, q, userID, lessonID).Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.SavedCode, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch progress for user %s lesson %s: %w", userID, lessonID, err)
	}
	return &p, nil
}

func (r *progressRepo) GetRecentByUser(ctx context.Context, userID string, limit int) ([]model.RecentProgress, error) {
	const q = `
        SELECT up.lesson_id, l.slug, l.title,
               p.id, p.slug, p.title,
               up.status, up.updated_at
        FROM user_progress up
        JOIN lessons l ON l.id = up.lesson_id
        JOIN projects p ON p.id = l.project_id
        WHERE up.user_id = $1
        ORDER BY up.updated_at DESC
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent progress for user %s: %w", userID, err)
	}
	defer rows.Close()

	var recents []model.RecentProgress
	for rows.Next() {
		var rp model.RecentProgress
		if err := rows.Scan(
			&rp.LessonID, &rp.LessonSlug, &rp.LessonTitle,
			&rp.ProjectID, &rp.ProjectSlug, &rp.ProjectTitle,
			&rp.Status, &rp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recent progress row: %w", err)
		}
		recents = append(recents, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent progress rows: %w", err)
	}
	return recents, nil
}

func (r *progressRepo) GetByUserAndLessonIDs(ctx context.Context, userID string, lessonIDs []string) ([]model.UserProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	const q = `
        SELECT id, user_id, lesson_id, status, saved_code, completed_at, created_at, updated_at
        FROM user_progress
        WHERE user_id = $1 AND lesson_id = ANY($2)
    `
	rows, err := r.pool.Query(ctx, q, userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch progress batch for user %s: %w", userID, err)
	}
	defer rows.Close()

	var records []model.UserProgress
	for rows.Next() {
		var p model.UserProgress
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.SavedCode, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress rows: %w", err)
	}
	return records, nil
}
