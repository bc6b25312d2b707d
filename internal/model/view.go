package model

import "time"

// LessonContent is the viewer-facing copy of a lesson after the access policy
// has been applied. Redacted is true when the solution fields were replaced
// by placeholders.
type LessonContent struct {
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

// LessonView composes everything the lesson page needs for one viewer.
type LessonView struct {
	ProjectID    string        `json:"project_id"`
	ProjectSlug  string        `json:"project_slug"`
	ProjectTitle string        `json:"project_title"`
	Lesson       LessonContent `json:"lesson"`
	Status       string        `json:"status"`
	SavedCode    *string       `json:"saved_code,omitempty"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	IsLocked     bool          `json:"is_locked"`
}

// ProjectRef is a light project pointer used where the full row is overkill.
type ProjectRef struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// RecentProgress is one dashboard activity row: a progress record joined to
// its lesson and project.
type RecentProgress struct {
	LessonID     string    `db:"lesson_id" json:"lesson_id"`
	LessonSlug   string    `db:"lesson_slug" json:"lesson_slug"`
	LessonTitle  string    `db:"lesson_title" json:"lesson_title"`
	ProjectID    string    `db:"project_id" json:"project_id"`
	ProjectSlug  string    `db:"project_slug" json:"project_slug"`
	ProjectTitle string    `db:"project_title" json:"project_title"`
	Status       string    `db:"status" json:"status"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DashboardView is the composed dashboard payload for one user.
type DashboardView struct {
	UserName         string           `json:"user_name"`
	Plan             string           `json:"plan"`
	CompletedLessons int              `json:"completed_lessons"`
	TotalLessons     int              `json:"total_lessons"`
	LastActiveAt     *time.Time       `json:"last_active_at,omitempty"`
	CurrentProject   *ProjectRef      `json:"current_project,omitempty"`
	RecentActivity   []RecentProgress `json:"recent_activity"`
}

// LessonSummary is one lesson row in the project catalog, annotated for the
// viewer.
type LessonSummary struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
	IsPremium bool   `json:"is_premium"`
	IsLocked  bool   `json:"is_locked"`
	Completed bool   `json:"completed"`
}

// ProjectListItem is one project in the catalog with its ordered lessons.
type ProjectListItem struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	PhaseSlug      string          `json:"phase_slug"`
	PhaseTitle     string          `json:"phase_title"`
	SortOrder      int             `json:"sort_order"`
	Lessons        []LessonSummary `json:"lessons"`
	CompletedCount int             `json:"completed_count"`
}
