package model

import "time"

const (
	ProgressStatusInProgress = "in_progress"
	ProgressStatusCompleted  = "completed"
)

// UserProgress tracks one user's state on one lesson. The table holds at most
// one row per (user, lesson) pair; every write is an upsert against that
// uniqueness constraint.
type UserProgress struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	LessonID    string     `db:"lesson_id" json:"lesson_id"`
	Status      string     `db:"status" json:"status"`
	SavedCode   *string    `db:"saved_code" json:"saved_code,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
