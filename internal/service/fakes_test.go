package service

import (
	"context"

	"pyforge/internal/model"
)

// Function-backed fakes for the interfaces the services depend on. A nil
// function field means "return zero values".

type fakeCurriculumRepo struct {
	resolveLesson func(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error)
	getLessonByID func(ctx context.Context, lessonID string) (*model.Lesson, error)
	listProjects  func(ctx context.Context) ([]model.ProjectWithPhase, error)
	listLessons   func(ctx context.Context, projectIDs []string) ([]model.Lesson, error)
	countLessons  func(ctx context.Context) (int, error)
}

func (f *fakeCurriculumRepo) ResolveLesson(ctx context.Context, projectSlug, lessonSlug string) (*model.Lesson, *model.Project, error) {
	if f.resolveLesson == nil {
		return nil, nil, nil
	}
	return f.resolveLesson(ctx, projectSlug, lessonSlug)
}

func (f *fakeCurriculumRepo) GetLessonByID(ctx context.Context, lessonID string) (*model.Lesson, error) {
	if f.getLessonByID == nil {
		return nil, nil
	}
	return f.getLessonByID(ctx, lessonID)
}

func (f *fakeCurriculumRepo) ListPublishedProjects(ctx context.Context) ([]model.ProjectWithPhase, error) {
	if f.listProjects == nil {
		return nil, nil
	}
	return f.listProjects(ctx)
}

func (f *fakeCurriculumRepo) ListLessonsByProjectIDs(ctx context.Context, projectIDs []string) ([]model.Lesson, error) {
	if f.listLessons == nil {
		return nil, nil
	}
	return f.listLessons(ctx, projectIDs)
}

func (f *fakeCurriculumRepo) CountPublishedLessons(ctx context.Context) (int, error) {
	if f.countLessons == nil {
		return 0, nil
	}
	return f.countLessons(ctx)
}

type fakeUserRepo struct {
	upsertUser  func(ctx context.Context, u *model.User) error
	getUserByID func(ctx context.Context, userID string) (*model.User, error)
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, u *model.User) error {
	if f.upsertUser == nil {
		return nil
	}
	return f.upsertUser(ctx, u)
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if f.getUserByID == nil {
		return nil, nil
	}
	return f.getUserByID(ctx, userID)
}

type fakeProgressRepo struct {
	saveCode       func(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error)
	markComplete   func(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error)
	getByLesson    func(ctx context.Context, userID, lessonID string) (*model.UserProgress, error)
	getRecent      func(ctx context.Context, userID string, limit int) ([]model.RecentProgress, error)
	getByLessonIDs func(ctx context.Context, userID string, lessonIDs []string) ([]model.UserProgress, error)
}

func (f *fakeProgressRepo) SaveCode(ctx context.Context, userID, lessonID, code string) (*model.UserProgress, error) {
	if f.saveCode == nil {
		return nil, nil
	}
	return f.saveCode(ctx, userID, lessonID, code)
}

func (f *fakeProgressRepo) MarkComplete(ctx context.Context, userID, lessonID string) (*model.UserProgress, bool, error) {
	if f.markComplete == nil {
		return nil, false, nil
	}
	return f.markComplete(ctx, userID, lessonID)
}

func (f *fakeProgressRepo) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserProgress, error) {
	if f.getByLesson == nil {
		return nil, nil
	}
	return f.getByLesson(ctx, userID, lessonID)
}

func (f *fakeProgressRepo) GetRecentByUser(ctx context.Context, userID string, limit int) ([]model.RecentProgress, error) {
	if f.getRecent == nil {
		return nil, nil
	}
	return f.getRecent(ctx, userID, limit)
}

func (f *fakeProgressRepo) GetByUserAndLessonIDs(ctx context.Context, userID string, lessonIDs []string) ([]model.UserProgress, error) {
	if f.getByLessonIDs == nil {
		return nil, nil
	}
	return f.getByLessonIDs(ctx, userID, lessonIDs)
}

// fakeSubmissionRepo records every appended row.
type fakeSubmissionRepo struct {
	appendErr error
	appended  []*model.CodeSubmission
}

func (f *fakeSubmissionRepo) Append(ctx context.Context, s *model.CodeSubmission) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, s)
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*model.CodeSubmission, error) {
	for _, s := range f.appended {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

type fakeSandbox struct {
	out *SandboxRunOutput
	err error
}

func (f *fakeSandbox) Execute(ctx context.Context, code string) (*SandboxRunOutput, error) {
	return f.out, f.err
}

// fakePublisher records every published message.
type fakePublisher struct {
	err       error
	topics    []string
	published [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.topics = append(f.topics, topic)
	f.published = append(f.published, payload)
	return "msg-1", nil
}

// fakeQueue records every enqueued payload.
type fakeQueue struct {
	err    error
	queues []string
	sent   [][]byte
}

func (f *fakeQueue) Send(ctx context.Context, queue string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.queues = append(f.queues, queue)
	f.sent = append(f.sent, payload)
	return nil
}
