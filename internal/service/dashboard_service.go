package service

import (
	"context"
	"fmt"
	"sync"

	"pyforge/internal/model"
	"pyforge/internal/repository"

	"github.com/rs/zerolog"
)

// recentActivityLimit caps the activity feed on the dashboard.
const recentActivityLimit = 10

// DashboardService assembles the signed-in home view.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*model.DashboardView, error)
}

type dashboardService struct {
	userRepo       repository.UserRepository
	progressRepo   repository.ProgressRepository
	curriculumRepo repository.CurriculumRepository
	logger         zerolog.Logger
}

func NewDashboardService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	curriculumRepo repository.CurriculumRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		progressRepo:   progressRepo,
		curriculumRepo: curriculumRepo,
		logger:         logger.With().Str("service", "DashboardService").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*model.DashboardView, error) {
	// The profile, the activity feed and the lesson count come from three
	// independent queries; run them concurrently and fail if any one fails.
	var (
		user         *model.User
		recents      []model.RecentProgress
		totalLessons int

		userErr, recentErr, countErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		user, userErr = s.userRepo.GetUserByID(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		recents, recentErr = s.progressRepo.GetRecentByUser(ctx, userID, recentActivityLimit)
	}()
	go func() {
		defer wg.Done()
		totalLessons, countErr = s.curriculumRepo.CountPublishedLessons(ctx)
	}()
	wg.Wait()

	if userErr != nil {
		return nil, fmt.Errorf("fetching user %s: %w", userID, userErr)
	}
	if recentErr != nil {
		return nil, fmt.Errorf("fetching recent activity for user %s: %w", userID, recentErr)
	}
	if countErr != nil {
		return nil, fmt.Errorf("counting published lessons: %w", countErr)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	view := &model.DashboardView{
		UserName:         user.Name,
		Plan:             NormalizePlan(user.Plan),
		CompletedLessons: user.LessonsCompleted,
		TotalLessons:     totalLessons,
		LastActiveAt:     user.LastActiveAt,
		RecentActivity:   recents,
	}

	// The most recently touched in-progress lesson decides the "continue
	// where you left off" project. A user whose recent activity is all
	// completions has nothing to continue.
	for _, r := range recents {
		if r.Status == model.ProgressStatusInProgress {
			view.CurrentProject = &model.ProjectRef{
				ID:    r.ProjectID,
				Slug:  r.ProjectSlug,
				Title: r.ProjectTitle,
			}
			break
		}
	}

	return view, nil
}
