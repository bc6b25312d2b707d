package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pyforge/internal/model"
	"pyforge/internal/pubsub"
	"pyforge/internal/repository"

	"github.com/rs/zerolog"
)

// ProgressService owns lesson progress writes for a user.
type ProgressService interface {
	// SaveCode upserts the viewer's scratch code for a lesson without ever
	// regressing a completed lesson back to in-progress.
	SaveCode(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error)
	// MarkComplete marks the lesson completed. Safe to call repeatedly; the
	// completion counter and event fire only on the first transition.
	MarkComplete(ctx context.Context, userID, lessonID string) (*model.UserProgress, error)
}

type progressService struct {
	progressRepo    repository.ProgressRepository
	curriculumRepo  repository.CurriculumRepository
	publisher       pubsub.Publisher
	completionTopic string
	logger          zerolog.Logger
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	curriculumRepo repository.CurriculumRepository,
	publisher pubsub.Publisher,
	completionTopic string,
	logger zerolog.Logger,
) ProgressService {
	return &progressService{
		progressRepo:    progressRepo,
		curriculumRepo:  curriculumRepo,
		publisher:       publisher,
		completionTopic: completionTopic,
		logger:          logger.With().Str("service", "ProgressService").Logger(),
	}
}

func (s *progressService) SaveCode(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error) {
	lesson, err := s.curriculumRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("looking up lesson %s: %w", lessonID, err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	return s.progressRepo.SaveCode(ctx, userID, lessonID, code)
}

func (s *progressService) MarkComplete(ctx context.Context, userID, lessonID string) (*model.UserProgress, error) {
	lesson, err := s.curriculumRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("looking up lesson %s: %w", lessonID, err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	progress, firstCompletion, err := s.progressRepo.MarkComplete(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	if firstCompletion {
		s.publishCompletion(ctx, progress)
	}

	return progress, nil
}

// publishCompletion emits the lesson.completed event. Best effort: a publish
// failure is logged and never surfaces to the caller.
func (s *progressService) publishCompletion(ctx context.Context, progress *model.UserProgress) {
	event := struct {
		UserID      string     `json:"user_id"`
		LessonID    string     `json:"lesson_id"`
		CompletedAt *time.Time `json:"completed_at"`
	}{
		UserID:      progress.UserID,
		LessonID:    progress.LessonID,
		CompletedAt: progress.CompletedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal lesson completion event")
		return
	}

	if _, err := s.publisher.Publish(ctx, s.completionTopic, payload); err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", progress.UserID).
			Str("lesson_id", progress.LessonID).
			Msg("Failed to publish lesson completion event")
	}
}
