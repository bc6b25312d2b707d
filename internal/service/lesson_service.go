package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pyforge/internal/model"
	"pyforge/internal/repository"

	"github.com/rs/zerolog"
)

var (
	// ErrLessonNotFound is returned when no published lesson matches the
	// requested slugs or ID.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNotAuthenticated is returned when an operation that needs a user
	// identity is called without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// LessonService composes viewer-facing lesson and catalog views.
type LessonService interface {
	// GetLessonView resolves a lesson by slugs and assembles the full page
	// payload for the viewer. A missing userID is a precondition failure;
	// only the catalog listing serves anonymous viewers.
	GetLessonView(ctx context.Context, userID, projectSlug, lessonSlug string) (*model.LessonView, error)
	// ListProjects returns the published catalog, grouped by phase order and
	// annotated with the viewer's lock and completion state.
	ListProjects(ctx context.Context, userID string) ([]model.ProjectListItem, error)
}

type lessonService struct {
	curriculumRepo repository.CurriculumRepository
	userRepo       repository.UserRepository
	progressRepo   repository.ProgressRepository
	logger         zerolog.Logger
}

func NewLessonService(
	curriculumRepo repository.CurriculumRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	logger zerolog.Logger,
) LessonService {
	return &lessonService{
		curriculumRepo: curriculumRepo,
		userRepo:       userRepo,
		progressRepo:   progressRepo,
		logger:         logger.With().Str("service", "LessonService").Logger(),
	}
}

func (s *lessonService) GetLessonView(ctx context.Context, userID, projectSlug, lessonSlug string) (*model.LessonView, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	lesson, project, err := s.curriculumRepo.ResolveLesson(ctx, projectSlug, lessonSlug)
	if err != nil {
		return nil, fmt.Errorf("resolving lesson %s/%s: %w", projectSlug, lessonSlug, err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	// The viewer's profile and progress are independent reads; fetch them
	// concurrently.
	var (
		user     *model.User
		progress *model.UserProgress

		wg                   sync.WaitGroup
		userErr, progressErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = s.userRepo.GetUserByID(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		progress, progressErr = s.progressRepo.GetByUserAndLesson(ctx, userID, lesson.ID)
	}()
	wg.Wait()

	if userErr != nil {
		return nil, fmt.Errorf("fetching user %s: %w", userID, userErr)
	}
	if progressErr != nil {
		return nil, fmt.Errorf("fetching progress for user %s: %w", userID, progressErr)
	}

	plan := PlanFree
	if user != nil {
		plan = NormalizePlan(user.Plan)
	}
	content := ResolveLessonContent(lesson, plan)

	view := &model.LessonView{
		ProjectID:    project.ID,
		ProjectSlug:  project.Slug,
		ProjectTitle: project.Title,
		Lesson:       content,
		IsLocked:     content.Redacted,
	}
	if progress != nil {
		view.Status = progress.Status
		view.SavedCode = progress.SavedCode
		view.CompletedAt = progress.CompletedAt
	}

	return view, nil
}

func (s *lessonService) ListProjects(ctx context.Context, userID string) ([]model.ProjectListItem, error) {
	projects, err := s.curriculumRepo.ListPublishedProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	lessons, err := s.curriculumRepo.ListLessonsByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}

	// One batch query covers the viewer's progress across every listed
	// lesson; no per-lesson lookups.
	var (
		user     *model.User
		progress []model.UserProgress
	)
	if userID != "" {
		lessonIDs := make([]string, 0, len(lessons))
		for _, l := range lessons {
			lessonIDs = append(lessonIDs, l.ID)
		}

		var wg sync.WaitGroup
		var userErr, progressErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			user, userErr = s.userRepo.GetUserByID(ctx, userID)
		}()
		go func() {
			defer wg.Done()
			progress, progressErr = s.progressRepo.GetByUserAndLessonIDs(ctx, userID, lessonIDs)
		}()
		wg.Wait()

		if userErr != nil {
			return nil, fmt.Errorf("fetching user %s: %w", userID, userErr)
		}
		if progressErr != nil {
			return nil, fmt.Errorf("fetching progress for user %s: %w", userID, progressErr)
		}
	}

	plan := PlanFree
	if user != nil {
		plan = NormalizePlan(user.Plan)
	}

	completed := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Status == model.ProgressStatusCompleted {
			completed[p.LessonID] = true
		}
	}

	lessonsByProject := make(map[string][]model.LessonSummary, len(projects))
	completedByProject := make(map[string]int, len(projects))
	for _, l := range lessons {
		summary := model.LessonSummary{
			ID:        l.ID,
			Slug:      l.Slug,
			Title:     l.Title,
			SortOrder: l.SortOrder,
			IsPremium: l.IsPremium,
			IsLocked:  LessonLocked(&l, plan),
			Completed: completed[l.ID],
		}
		lessonsByProject[l.ProjectID] = append(lessonsByProject[l.ProjectID], summary)
		if summary.Completed {
			completedByProject[l.ProjectID]++
		}
	}

	items := make([]model.ProjectListItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, model.ProjectListItem{
			ID:             p.ID,
			Slug:           p.Slug,
			Title:          p.Title,
			Description:    p.Description,
			PhaseSlug:      p.PhaseSlug,
			PhaseTitle:     p.PhaseTitle,
			SortOrder:      p.SortOrder,
			Lessons:        lessonsByProject[p.ID],
			CompletedCount: completedByProject[p.ID],
		})
	}

	return items, nil
}
