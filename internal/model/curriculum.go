package model

import "time"

// Phase groups related projects into one stage of the curriculum.
type Phase struct {
	ID        string `db:"id" json:"id"`
	Slug      string `db:"slug" json:"slug"`
	Title     string `db:"title" json:"title"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// Project is a buildable unit of the curriculum made up of ordered lessons.
// Unpublished projects are invisible to every read path.
type Project struct {
	ID          string    `db:"id" json:"id"`
	PhaseID     string    `db:"phase_id" json:"phase_id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProjectWithPhase carries a project joined to its phase for catalog listings.
type ProjectWithPhase struct {
	Project
	PhaseSlug  string `db:"phase_slug" json:"phase_slug"`
	PhaseTitle string `db:"phase_title" json:"phase_title"`
}

// Lesson is one step of a project. SolutionCode and SolutionExplanation are
// the premium-gated fields; everything else is visible to every viewer.
type Lesson struct {
	ID                  string    `db:"id" json:"id"`
	ProjectID           string    `db:"project_id" json:"project_id"`
	Slug                string    `db:"slug" json:"slug"`
	Title               string    `db:"title" json:"title"`
	SortOrder           int       `db:"sort_order" json:"sort_order"`
	IsPremium           bool      `db:"is_premium" json:"is_premium"`
	ProblemStatement    string    `db:"problem_statement" json:"problem_statement"`
	StarterCode         string    `db:"starter_code" json:"starter_code"`
	SolutionCode        string    `db:"solution_code" json:"solution_code"`
	SolutionExplanation string    `db:"solution_explanation" json:"solution_explanation"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
