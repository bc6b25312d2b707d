package dto

import "time"

// ProjectRefDTO is a light project pointer.
type ProjectRefDTO struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// RecentActivityDTO is one row of the dashboard activity feed.
type RecentActivityDTO struct {
	LessonID     string    `json:"lesson_id"`
	LessonSlug   string    `json:"lesson_slug"`
	LessonTitle  string    `json:"lesson_title"`
	ProjectID    string    `json:"project_id"`
	ProjectSlug  string    `json:"project_slug"`
	ProjectTitle string    `json:"project_title"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DashboardResponseDTO is the composed dashboard payload.
type DashboardResponseDTO struct {
	UserName         string              `json:"user_name"`
	Plan             string              `json:"plan"`
	CompletedLessons int                 `json:"completed_lessons"`
	TotalLessons     int                 `json:"total_lessons"`
	LastActiveAt     *time.Time          `json:"last_active_at,omitempty"`
	CurrentProject   *ProjectRefDTO      `json:"current_project,omitempty"`
	RecentActivity   []RecentActivityDTO `json:"recent_activity"`
}
