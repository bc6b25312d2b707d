package dto

import "time"

// ProgressSaveCodeDTO is the body for saving lesson scratch code. Code may be
// empty; clearing the editor is a valid save.
type ProgressSaveCodeDTO struct {
	LessonID string `json:"lesson_id" validate:"required"`
	Code     string `json:"code"`
}

// ProgressCompleteDTO is the body for marking a lesson completed.
type ProgressCompleteDTO struct {
	LessonID string `json:"lesson_id" validate:"required"`
}

// ProgressResponseDTO is returned after progress writes.
type ProgressResponseDTO struct {
	LessonID    string     `json:"lesson_id"`
	Status      string     `json:"status"`
	SavedCode   *string    `json:"saved_code,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
