package model

import "time"

// CodeSubmission is one immutable record of a code run against a lesson.
// Rows are append-only; the API exposes no update or delete path. ArchivedAt
// is stamped by the archive orchestrator once the row has been copied to
// object storage.
type CodeSubmission struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	LessonID   string     `db:"lesson_id" json:"lesson_id"`
	Code       string     `db:"code" json:"code"`
	Output     string     `db:"output" json:"output"`
	Error      *string    `db:"error" json:"error,omitempty"`
	Passed     bool       `db:"passed" json:"passed"`
	DurationMS int64      `db:"duration_ms" json:"duration_ms"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// ExecutionResult is what the runner hands back for a completed sandbox round
// trip. Error is nil exactly when the run produced no stderr output.
// ExecutionTimeMS is wall-clock time measured on our side of the wire.
type ExecutionResult struct {
	Output          string  `json:"output"`
	Error           *string `json:"error"`
	ExecutionTimeMS int64   `json:"execution_time_ms"`
}
