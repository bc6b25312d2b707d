package model

import "time"

// User represents a learner in the system. Identity comes from the upstream
// auth provider; the row is created on first profile sync.
type User struct {
	UserID           string     `db:"user_id" json:"user_id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	AvatarURL        string     `db:"avatar_url" json:"avatar_url"`
	Plan             *string    `db:"plan" json:"plan,omitempty"`
	LessonsCompleted int        `db:"lessons_completed" json:"lessons_completed"`
	LastActiveAt     *time.Time `db:"last_active_at" json:"last_active_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
