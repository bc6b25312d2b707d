package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pyforge/internal/model"

	"github.com/rs/zerolog"
)

func lessonTestCurriculum() *fakeCurriculumRepo {
	lesson := &model.Lesson{
		ID:                  "lesson-1",
		ProjectID:           "project-1",
		Slug:                "tokenizer",
		Title:               "Write the Tokenizer",
		IsPremium:           true,
		ProblemStatement:    "Split the input into tokens.",
		StarterCode:         "def tokenize(src):\n    pass\n",
		SolutionCode:        "def tokenize(src):\n    return src.split()\n",
		SolutionExplanation: "Whitespace splitting is enough here.",
	}
	project := &model.Project{ID: "project-1", Slug: "interpreter", Title: "Build an Interpreter"}

	return &fakeCurriculumRepo{
		resolveLesson: func(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error) {
			if projectSlug == "interpreter" && lessonSlug == "tokenizer" {
				return lesson, project, nil
			}
			return nil, nil, nil
		},
	}
}

func TestGetLessonViewMissingUserIsRejected(t *testing.T) {
	curriculum := &fakeCurriculumRepo{
		resolveLesson: func(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error) {
			t.Error("curriculum queried despite missing user identity")
			return nil, nil, nil
		},
	}
	svc := NewLessonService(curriculum, &fakeUserRepo{}, &fakeProgressRepo{}, zerolog.Nop())

	view, err := svc.GetLessonView(context.Background(), "", "interpreter", "tokenizer")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("error = %v, want ErrNotAuthenticated", err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil when no user identity is present", view)
	}
}

func TestGetLessonViewFreeViewerIsLocked(t *testing.T) {
	userRepo := &fakeUserRepo{
		getUserByID: func(ctx context.Context, userID string) (*model.User, error) {
			return &model.User{UserID: userID}, nil
		},
	}
	svc := NewLessonService(lessonTestCurriculum(), userRepo, &fakeProgressRepo{}, zerolog.Nop())

	view, err := svc.GetLessonView(context.Background(), "user-1", "interpreter", "tokenizer")
	if err != nil {
		t.Fatalf("GetLessonView returned error: %v", err)
	}
	if !view.IsLocked {
		t.Error("IsLocked = false, want true for a free viewer of a premium lesson")
	}
	if view.Lesson.SolutionCode != RedactedSolutionCode {
		t.Errorf("SolutionCode = %q, want placeholder", view.Lesson.SolutionCode)
	}
	if view.Lesson.StarterCode == "" {
		t.Error("StarterCode is empty, starter material must always pass through")
	}
	if view.ProjectSlug != "interpreter" {
		t.Errorf("ProjectSlug = %q", view.ProjectSlug)
	}
	if view.Status != "" || view.SavedCode != nil {
		t.Error("viewer without a progress row should carry no progress state")
	}
}

func TestGetLessonViewProViewerSeesSolutionAndProgress(t *testing.T) {
	plan := "pro"
	userRepo := &fakeUserRepo{
		getUserByID: func(ctx context.Context, userID string) (*model.User, error) {
			return &model.User{UserID: userID, Plan: &plan}, nil
		},
	}
	savedCode := "def tokenize(src):\n    return []\n"
	completedAt := time.Now()
	progressRepo := &fakeProgressRepo{
		getByLesson: func(ctx context.Context, userID, lessonID string) (*model.UserProgress, error) {
			return &model.UserProgress{
				UserID:      userID,
				LessonID:    lessonID,
				Status:      model.ProgressStatusCompleted,
				SavedCode:   &savedCode,
				CompletedAt: &completedAt,
			}, nil
		},
	}
	svc := NewLessonService(lessonTestCurriculum(), userRepo, progressRepo, zerolog.Nop())

	view, err := svc.GetLessonView(context.Background(), "user-1", "interpreter", "tokenizer")
	if err != nil {
		t.Fatalf("GetLessonView returned error: %v", err)
	}
	if view.IsLocked {
		t.Error("IsLocked = true, want false for a pro viewer")
	}
	if view.Lesson.Redacted {
		t.Error("Redacted = true, want false for a pro viewer")
	}
	if view.Lesson.SolutionCode == RedactedSolutionCode {
		t.Error("SolutionCode is the placeholder, want the real solution")
	}
	if view.Status != model.ProgressStatusCompleted {
		t.Errorf("Status = %q", view.Status)
	}
	if view.SavedCode == nil || *view.SavedCode != savedCode {
		t.Errorf("SavedCode = %v", view.SavedCode)
	}
}

func TestGetLessonViewUnknownSlug(t *testing.T) {
	svc := NewLessonService(lessonTestCurriculum(), &fakeUserRepo{}, &fakeProgressRepo{}, zerolog.Nop())

	_, err := svc.GetLessonView(context.Background(), "user-1", "interpreter", "missing")
	if !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("error = %v, want ErrLessonNotFound", err)
	}
}

func TestGetLessonViewFetchErrorPropagates(t *testing.T) {
	userErr := errors.New("pool closed")
	userRepo := &fakeUserRepo{
		getUserByID: func(ctx context.Context, userID string) (*model.User, error) {
			return nil, userErr
		},
	}
	svc := NewLessonService(lessonTestCurriculum(), userRepo, &fakeProgressRepo{}, zerolog.Nop())

	if _, err := svc.GetLessonView(context.Background(), "user-1", "interpreter", "tokenizer"); !errors.Is(err, userErr) {
		t.Fatalf("error = %v, want the fetch error", err)
	}
}

func catalogCurriculum() *fakeCurriculumRepo {
	projects := []model.ProjectWithPhase{
		{
			Project:    model.Project{ID: "project-1", Slug: "interpreter", Title: "Build an Interpreter", SortOrder: 1},
			PhaseSlug:  "foundations",
			PhaseTitle: "Foundations",
		},
		{
			Project:    model.Project{ID: "project-2", Slug: "web-server", Title: "Build a Web Server", SortOrder: 2},
			PhaseSlug:  "systems",
			PhaseTitle: "Systems",
		},
	}
	lessons := []model.Lesson{
		{ID: "l1", ProjectID: "project-1", Slug: "tokenizer", SortOrder: 1, IsPremium: false},
		{ID: "l2", ProjectID: "project-1", Slug: "parser", SortOrder: 2, IsPremium: true},
		{ID: "l3", ProjectID: "project-2", Slug: "sockets", SortOrder: 1, IsPremium: true},
	}

	return &fakeCurriculumRepo{
		listProjects: func(ctx context.Context) ([]model.ProjectWithPhase, error) {
			return projects, nil
		},
		listLessons: func(ctx context.Context, projectIDs []string) ([]model.Lesson, error) {
			if len(projectIDs) != 2 {
				return nil, errors.New("expected one batched call for both projects")
			}
			return lessons, nil
		},
	}
}

func TestListProjectsAnnotatesForFreeViewer(t *testing.T) {
	progressRepo := &fakeProgressRepo{
		getByLessonIDs: func(ctx context.Context, userID string, lessonIDs []string) ([]model.UserProgress, error) {
			if len(lessonIDs) != 3 {
				return nil, errors.New("expected one batched call for all lessons")
			}
			return []model.UserProgress{
				{UserID: userID, LessonID: "l1", Status: model.ProgressStatusCompleted},
				{UserID: userID, LessonID: "l2", Status: model.ProgressStatusInProgress},
			}, nil
		},
	}
	svc := NewLessonService(catalogCurriculum(), &fakeUserRepo{}, progressRepo, zerolog.Nop())

	items, err := svc.ListProjects(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d projects, want 2", len(items))
	}

	interpreter := items[0]
	if interpreter.Slug != "interpreter" {
		t.Fatalf("first project = %q, want interpreter", interpreter.Slug)
	}
	if len(interpreter.Lessons) != 2 {
		t.Fatalf("interpreter has %d lessons, want 2", len(interpreter.Lessons))
	}
	if interpreter.CompletedCount != 1 {
		t.Errorf("interpreter CompletedCount = %d, want 1", interpreter.CompletedCount)
	}

	tokenizer, parser := interpreter.Lessons[0], interpreter.Lessons[1]
	if tokenizer.IsLocked {
		t.Error("free lesson is locked for a free viewer")
	}
	if !tokenizer.Completed {
		t.Error("tokenizer Completed = false, want true")
	}
	if !parser.IsLocked {
		t.Error("premium lesson is unlocked for a free viewer")
	}
	if parser.Completed {
		t.Error("in-progress lesson reported as completed")
	}
}

func TestListProjectsProViewerUnlocked(t *testing.T) {
	plan := "pro"
	userRepo := &fakeUserRepo{
		getUserByID: func(ctx context.Context, userID string) (*model.User, error) {
			return &model.User{UserID: userID, Plan: &plan}, nil
		},
	}
	svc := NewLessonService(catalogCurriculum(), userRepo, &fakeProgressRepo{}, zerolog.Nop())

	items, err := svc.ListProjects(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	for _, project := range items {
		for _, lesson := range project.Lessons {
			if lesson.IsLocked {
				t.Errorf("lesson %s locked for a pro viewer", lesson.Slug)
			}
		}
	}
}

func TestListProjectsAnonymousViewer(t *testing.T) {
	svc := NewLessonService(catalogCurriculum(), &fakeUserRepo{}, &fakeProgressRepo{}, zerolog.Nop())

	items, err := svc.ListProjects(context.Background(), "")
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	for _, project := range items {
		if project.CompletedCount != 0 {
			t.Errorf("project %s CompletedCount = %d for anonymous viewer", project.Slug, project.CompletedCount)
		}
		for _, lesson := range project.Lessons {
			if lesson.IsPremium && !lesson.IsLocked {
				t.Errorf("premium lesson %s unlocked for anonymous viewer", lesson.Slug)
			}
		}
	}
}
