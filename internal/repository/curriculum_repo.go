package repository

import (
	"context"
	"errors"
	"fmt"

	"pyforge/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CurriculumRepository reads the published phase/project/lesson hierarchy.
// Curriculum content is authored out of band; this layer is read-only.
type CurriculumRepository interface {
	// ResolveLesson maps a (projectSlug, lessonSlug) pair to the lesson and
	// its project. Returns (nil, nil, nil) when the pair does not resolve to
	// a lesson in a published project.
	ResolveLesson(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error)
	// GetLessonByID returns the lesson, or nil when it does not exist or its
	// project is unpublished.
	GetLessonByID(ctx context.Context, lessonID string) (*model.Lesson, error)
	// ListPublishedProjects returns published projects joined to their phase,
	// ordered by phase then project sort order.
	ListPublishedProjects(ctx context.Context) ([]model.ProjectWithPhase, error)
	// ListLessonsByProjectIDs returns the lessons of the given projects in
	// one query, ordered by project then lesson sort order.
	ListLessonsByProjectIDs(ctx context.Context, projectIDs []string) ([]model.Lesson, error)
	// CountPublishedLessons counts lessons across all published projects.
	CountPublishedLessons(ctx context.Context) (int, error)
}

type curriculumRepo struct {
	pool *pgxpool.Pool
}

// NewCurriculumRepo creates a new CurriculumRepository.
func NewCurriculumRepo(pool *pgxpool.Pool) CurriculumRepository {
	return &curriculumRepo{pool: pool}
}

func (r *curriculumRepo) ResolveLesson(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error) {
	const q = `
        SELECT l.id, l.project_id, l.slug, l.title, l.sort_order, l.is_premium,
               l.problem_statement, l.starter_code, l.solution_code, l.solution_explanation,
               l.created_at, l.updated_at,
               p.id, p.phase_id, p.slug, p.title, p.description, p.sort_order, p.is_published,
               p.created_at, p.updated_at
        FROM lessons l
        JOIN projects p ON p.id = l.project_id
        WHERE p.slug = $1
          AND l.slug = $2
          AND p.is_published
    `
	var l model.Lesson
	var p model.Project
	err := r.pool.QueryRow(ctx, q, projectSlug, lessonSlug).Scan(
		&l.ID, &l.ProjectID, &l.Slug, &l.Title, &l.SortOrder, &l.IsPremium,
		&l.ProblemStatement, &l.StarterCode, &l.SolutionCode, &l.SolutionExplanation,
		&l.CreatedAt, &l.UpdatedAt,
		&p.ID, &p.PhaseID, &p.Slug, &p.Title, &p.Description, &p.SortOrder, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("resolve lesson %s/%s: %w", projectSlug, lessonSlug, err)
	}
	return &l, &p, nil
}

func (r *curriculumRepo) GetLessonByID(ctx context.Context, lessonID string) (*model.Lesson, error) {
	const q = `
        SELECT l.id, l.project_id, l.slug, l.title, l.sort_order, l.is_premium,
               l.problem_statement, l.starter_code, l.solution_code, l.solution_explanation,
               l.created_at, l.updated_at
        FROM lessons l
        JOIN projects p ON p.id = l.project_id
        WHERE l.id = $1
          AND p.is_published
    `
	var l model.Lesson
	err := r.pool.QueryRow(ctx, q, lessonID).Scan(
		&l.ID, &l.ProjectID, &l.Slug, &l.Title, &l.SortOrder, &l.IsPremium,
		&l.ProblemStatement, &l.StarterCode, &l.SolutionCode, &l.SolutionExplanation,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch lesson %s: %w", lessonID, err)
	}
	return &l, nil
}

func (r *curriculumRepo) ListPublishedProjects(ctx context.Context) ([]model.ProjectWithPhase, error) {
	const q = `
        SELECT p.id, p.phase_id, p.slug, p.title, p.description, p.sort_order, p.is_published,
               p.created_at, p.updated_at,
               ph.slug, ph.title
        FROM projects p
        JOIN phases ph ON ph.id = p.phase_id
        WHERE p.is_published
        ORDER BY ph.sort_order, p.sort_order
    `
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	var projects []model.ProjectWithPhase
	for rows.Next() {
		var p model.ProjectWithPhase
		if err := rows.Scan(
			&p.ID, &p.PhaseID, &p.Slug, &p.Title, &p.Description, &p.SortOrder, &p.IsPublished,
			&p.CreatedAt, &p.UpdatedAt,
			&p.PhaseSlug, &p.PhaseTitle,
		); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return projects, nil
}

func (r *curriculumRepo) ListLessonsByProjectIDs(ctx context.Context, projectIDs []string) ([]model.Lesson, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	const q = `
        SELECT id, project_id, slug, title, sort_order, is_premium,
               problem_statement, starter_code, solution_code, solution_explanation,
               created_at, updated_at
        FROM lessons
        WHERE project_id = ANY($1)
        ORDER BY project_id, sort_order
    `
	rows, err := r.pool.Query(ctx, q, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list lessons for %d projects: %w", len(projectIDs), err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(
			&l.ID, &l.ProjectID, &l.Slug, &l.Title, &l.SortOrder, &l.IsPremium,
			&l.ProblemStatement, &l.StarterCode, &l.SolutionCode, &l.SolutionExplanation,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson rows: %w", err)
	}
	return lessons, nil
}

func (r *curriculumRepo) CountPublishedLessons(ctx context.Context) (int, error) {
	const q = `
        SELECT COUNT(*)
        FROM lessons l
        JOIN projects p ON p.id = l.project_id
        WHERE p.is_published
    `
	var count int
	if err := r.pool.QueryRow(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count published lessons: %w", err)
	}
	return count, nil
}
