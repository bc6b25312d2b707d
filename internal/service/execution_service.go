package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pyforge/internal/metrics"
	"pyforge/internal/model"
	"pyforge/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// submissionWriteTimeout bounds the audit writes that run after the caller's
// context is detached.
const submissionWriteTimeout = 5 * time.Second

// ArchiveEnqueuer queues a submission for background archival.
type ArchiveEnqueuer interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// ExecutionService runs lesson code in the sandbox and records every attempt.
type ExecutionService interface {
	// Execute submits code for a lesson, returning the run result. A sandbox
	// or transport failure comes back as a result whose Error carries the
	// failure message, not as a Go error, so the caller always has something
	// to render. Every invocation appends exactly one submission row, whether
	// the run succeeded, failed in user code, or never reached the sandbox.
	Execute(ctx context.Context, userID, lessonID, code string) (*model.ExecutionResult, error)
}

type executionService struct {
	sandbox        SandboxClient
	curriculumRepo repository.CurriculumRepository
	submissionRepo repository.SubmissionRepository
	queue          ArchiveEnqueuer
	archiveQueue   string
	logger         zerolog.Logger
}

func NewExecutionService(
	sandbox SandboxClient,
	curriculumRepo repository.CurriculumRepository,
	submissionRepo repository.SubmissionRepository,
	queue ArchiveEnqueuer,
	archiveQueue string,
	logger zerolog.Logger,
) ExecutionService {
	return &executionService{
		sandbox:        sandbox,
		curriculumRepo: curriculumRepo,
		submissionRepo: submissionRepo,
		queue:          queue,
		archiveQueue:   archiveQueue,
		logger:         logger.With().Str("service", "ExecutionService").Logger(),
	}
}

func (s *executionService) Execute(ctx context.Context, userID, lessonID, code string) (*model.ExecutionResult, error) {
	lesson, err := s.curriculumRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("looking up lesson %s: %w", lessonID, err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	start := time.Now()
	out, runErr := s.sandbox.Execute(ctx, code)
	elapsed := time.Since(start)

	metrics.ExecutionDuration.Observe(elapsed.Seconds())

	submission := &model.CodeSubmission{
		ID:         uuid.New().String(),
		UserID:     userID,
		LessonID:   lessonID,
		Code:       code,
		DurationMS: elapsed.Milliseconds(),
	}

	result := &model.ExecutionResult{ExecutionTimeMS: submission.DurationMS}
	if runErr != nil {
		errMsg := fmt.Sprintf("Execution failed: %v", runErr)
		submission.Error = &errMsg
		result.Error = &errMsg
	} else {
		submission.Output = out.Stdout
		submission.Passed = out.Stderr == ""
		result.Output = out.Stdout
		if out.Stderr != "" {
			stderr := out.Stderr
			submission.Error = &stderr
			result.Error = &stderr
		}
	}
	metrics.ExecutionsTotal.WithLabelValues(strconv.FormatBool(submission.Passed)).Inc()

	s.recordSubmission(ctx, submission)

	if runErr != nil {
		s.logger.Error().
			Err(runErr).
			Str("user_id", userID).
			Str("lesson_id", lessonID).
			Msg("Sandbox execution failed")
	}

	return result, nil
}

// recordSubmission appends the audit row and enqueues it for archival. The
// row must land even when the caller's context is already cancelled, so the
// writes run on a detached context with their own deadline. A failed write
// is logged and counted but never surfaces to the caller.
func (s *executionService) recordSubmission(ctx context.Context, submission *model.CodeSubmission) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), submissionWriteTimeout)
	defer cancel()

	if err := s.submissionRepo.Append(writeCtx, submission); err != nil {
		metrics.SubmissionLogFailures.Inc()
		s.logger.Error().
			Err(err).
			Str("user_id", submission.UserID).
			Str("lesson_id", submission.LessonID).
			Msg("Failed to append code submission")
		return
	}

	payload, err := json.Marshal(map[string]string{"submission_id": submission.ID})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal archive job payload")
		return
	}
	if err := s.queue.Send(writeCtx, s.archiveQueue, payload); err != nil {
		s.logger.Warn().
			Err(err).
			Str("submission_id", submission.ID).
			Msg("Failed to enqueue submission for archival")
	}
}
