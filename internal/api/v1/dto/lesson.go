package dto

import "time"

// LessonContentDTO is the access-resolved lesson body. When Redacted is true
// the solution fields hold placeholder text.
type LessonContentDTO struct {
	ID                  string `json:"id"`
	Slug                string `json:"slug"`
	Title               string `json:"title"`
	SortOrder           int    `json:"sort_order"`
	IsPremium           bool   `json:"is_premium"`
	ProblemStatement    string `json:"problem_statement"`
	StarterCode         string `json:"starter_code"`
	SolutionCode        string `json:"solution_code"`
	SolutionExplanation string `json:"solution_explanation"`
	Redacted            bool   `json:"redacted"`
}

// LessonViewResponseDTO is the full lesson page payload.
type LessonViewResponseDTO struct {
	ProjectID    string           `json:"project_id"`
	ProjectSlug  string           `json:"project_slug"`
	ProjectTitle string           `json:"project_title"`
	Lesson       LessonContentDTO `json:"lesson"`
	Status       string           `json:"status"`
	SavedCode    *string          `json:"saved_code,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	IsLocked     bool             `json:"is_locked"`
}

// LessonSummaryDTO is one lesson row in the project catalog.
type LessonSummaryDTO struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
	IsPremium bool   `json:"is_premium"`
	IsLocked  bool   `json:"is_locked"`
	Completed bool   `json:"completed"`
}

// ProjectListItemDTO is one project in the catalog response.
type ProjectListItemDTO struct {
	ID             string             `json:"id"`
	Slug           string             `json:"slug"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	PhaseSlug      string             `json:"phase_slug"`
	PhaseTitle     string             `json:"phase_title"`
	SortOrder      int                `json:"sort_order"`
	Lessons        []LessonSummaryDTO `json:"lessons"`
	CompletedCount int                `json:"completed_count"`
}
