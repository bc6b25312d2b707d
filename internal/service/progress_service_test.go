package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pyforge/internal/model"

	"github.com/rs/zerolog"
)

func progressTestCurriculum() *fakeCurriculumRepo {
	return &fakeCurriculumRepo{
		getLessonByID: func(ctx context.Context, lessonID string) (*model.Lesson, error) {
			if lessonID == "lesson-1" {
				return &model.Lesson{ID: "lesson-1"}, nil
			}
			return nil, nil
		},
	}
}

func TestMarkCompletePublishesOnFirstTransitionOnly(t *testing.T) {
	completedAt := time.Now()
	calls := 0
	progressRepo := &fakeProgressRepo{
		markComplete: func(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error) {
			calls++
			p := &model.UserProgress{
				UserID:      userID,
				LessonID:    lessonID,
				Status:      model.ProgressStatusCompleted,
				CompletedAt: &completedAt,
			}
			// Only the first call is the completing transition.
			return p, calls == 1, nil
		},
	}
	publisher := &fakePublisher{}
	svc := NewProgressService(progressRepo, progressTestCurriculum(), publisher, "lesson-completions", zerolog.Nop())

	for i := 0; i < 3; i++ {
		progress, err := svc.MarkComplete(context.Background(), "user-1", "lesson-1")
		if err != nil {
			t.Fatalf("call %d: MarkComplete returned error: %v", i+1, err)
		}
		if progress.Status != model.ProgressStatusCompleted {
			t.Fatalf("call %d: status = %q", i+1, progress.Status)
		}
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published %d events, want exactly 1", len(publisher.published))
	}
	if publisher.topics[0] != "lesson-completions" {
		t.Errorf("topic = %q, want lesson-completions", publisher.topics[0])
	}

	var event struct {
		UserID   string `json:"user_id"`
		LessonID string `json:"lesson_id"`
	}
	if err := json.Unmarshal(publisher.published[0], &event); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	if event.UserID != "user-1" || event.LessonID != "lesson-1" {
		t.Errorf("event = %+v", event)
	}
}

func TestMarkCompletePublishFailureIsSwallowed(t *testing.T) {
	progressRepo := &fakeProgressRepo{
		markComplete: func(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error) {
			return &model.UserProgress{UserID: userID, LessonID: lessonID, Status: model.ProgressStatusCompleted}, true, nil
		},
	}
	publisher := &fakePublisher{err: errors.New("topic unavailable")}
	svc := NewProgressService(progressRepo, progressTestCurriculum(), publisher, "lesson-completions", zerolog.Nop())

	if _, err := svc.MarkComplete(context.Background(), "user-1", "lesson-1"); err != nil {
		t.Fatalf("MarkComplete returned error: %v, publish failures must not surface", err)
	}
}

func TestMarkCompleteRepoErrorSurfaces(t *testing.T) {
	repoErr := errors.New("serialization failure")
	progressRepo := &fakeProgressRepo{
		markComplete: func(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error) {
			return nil, false, repoErr
		},
	}
	svc := NewProgressService(progressRepo, progressTestCurriculum(), &fakePublisher{}, "lesson-completions", zerolog.Nop())

	if _, err := svc.MarkComplete(context.Background(), "user-1", "lesson-1"); !errors.Is(err, repoErr) {
		t.Fatalf("error = %v, want the repository error unchanged", err)
	}
}

func TestSaveCodeUnknownLesson(t *testing.T) {
	svc := NewProgressService(&fakeProgressRepo{}, progressTestCurriculum(), &fakePublisher{}, "lesson-completions", zerolog.Nop())

	if _, err := svc.SaveCode(context.Background(), "user-1", "lesson-missing", "print(1)"); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("error = %v, want ErrLessonNotFound", err)
	}
}

func TestSaveCodePassesThrough(t *testing.T) {
	var gotCode string
	progressRepo := &fakeProgressRepo{
		saveCode: func(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error) {
			gotCode = code
			return &model.UserProgress{UserID: userID, LessonID: lessonID, Status: model.ProgressStatusInProgress, SavedCode: &code}, nil
		},
	}
	svc := NewProgressService(progressRepo, progressTestCurriculum(), &fakePublisher{}, "lesson-completions", zerolog.Nop())

	progress, err := svc.SaveCode(context.Background(), "user-1", "lesson-1", "x = 1")
	if err != nil {
		t.Fatalf("SaveCode returned error: %v", err)
	}
	if gotCode != "x = 1" {
		t.Errorf("repo received code %q", gotCode)
	}
	if progress.Status != model.ProgressStatusInProgress {
		t.Errorf("status = %q", progress.Status)
	}
}
