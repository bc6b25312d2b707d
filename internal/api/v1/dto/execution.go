package dto

// ExecutionRequestDTO is the body of a code run request.
type ExecutionRequestDTO struct {
	LessonID string `json:"lesson_id" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// ExecutionResponseDTO is the result of a completed sandbox run. Error is
// null when the run produced no stderr.
type ExecutionResponseDTO struct {
	Output          string  `json:"output"`
	Error           *string `json:"error"`
	ExecutionTimeMS int64   `json:"execution_time_ms"`
}
