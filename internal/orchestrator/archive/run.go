package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pyforge/internal/config"
	"pyforge/internal/pgmq"
	"pyforge/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/rs/zerolog"
)

// Run starts the submission archive orchestrator. It drains the archive
// queue, uploads each referenced submission to object storage and stamps the
// row with its archive time.
func Run(ctx context.Context, logger zerolog.Logger, client *pgmq.Client, submissionRepo repository.SubmissionRepository) error {
	// Load archive-specific config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config in archive orchestrator: %v", err)
	}
	queue := cfg.ArchiveQueueName

	// Initialize S3 client
	s3Config, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to load S3 config: %v", err)
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	logger.Info().Str("queue", queue).Str("bucket", cfg.S3Bucket).Msg("Starting archive orchestrator")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down archive orchestrator")
			return nil
		default:
		}
		// Read one message from the archive queue
		msgs, err := client.ReadWithPoll(ctx, queue, cfg.ArchivePollTimeoutSec, cfg.ArchivePollMaxMsg)
		if err != nil {
			logger.Error().Err(err).Msg("Error reading archive queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		logger.Info().Int64("msg_id", msg.ID).Msgf("Received archive job: %s", string(msg.Data))

		// Parse payload
		var payload struct {
			SubmissionID string `json:"submission_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Error().Err(err).Msg("Failed to unmarshal archive payload; deleting message")
			client.Delete(ctx, queue, []int64{msg.ID})
			continue
		}

		// Load the submission row
		submission, err := submissionRepo.GetByID(ctx, payload.SubmissionID)
		if err != nil {
			logger.Error().Err(err).Str("submission_id", payload.SubmissionID).Msg("Failed to load submission; will retry")
			time.Sleep(time.Second)
			continue
		}
		if submission == nil {
			logger.Warn().Str("submission_id", payload.SubmissionID).Msg("Submission no longer exists; deleting message")
			client.Delete(ctx, queue, []int64{msg.ID})
			continue
		}

		doc, err := json.Marshal(submission)
		if err != nil {
			logger.Error().Err(err).Str("submission_id", submission.ID).Msg("Failed to marshal submission; deleting message")
			client.Delete(ctx, queue, []int64{msg.ID})
			continue
		}
		key := fmt.Sprintf("submissions/%s/%s.json", submission.UserID, submission.ID)

		// Upload to object storage with retry/backoff
		backoff := time.Duration(cfg.ArchiveBackoffInitialSec) * time.Second
		var uploadErr error
		for attempt := 1; attempt <= cfg.ArchiveMaxRetries; attempt++ {
			ctxReq, cancel := context.WithTimeout(ctx, 10*time.Second)
			start := time.Now()
			_, err := s3Client.PutObject(ctxReq, &s3.PutObjectInput{
				Bucket:      aws.String(cfg.S3Bucket),
				Key:         aws.String(key),
				Body:        bytes.NewReader(doc),
				ContentType: aws.String("application/json"),
			})
			duration := time.Since(start)
			cancel()

			if err == nil {
				logger.Info().Str("key", key).Str("duration", duration.String()).Msg("Submission upload succeeded")
				uploadErr = nil
				break
			}
			uploadErr = err
			logger.Error().Err(uploadErr).Int("attempt", attempt).Msg("Submission upload failed, retrying")
			time.Sleep(backoff)
			backoff *= 2
			if backoff > time.Duration(cfg.ArchiveBackoffMaxSec)*time.Second {
				backoff = time.Duration(cfg.ArchiveBackoffMaxSec) * time.Second
			}
		}
		if uploadErr != nil {
			// Send the failed job to dead-letter queue
			dlq := cfg.ArchiveDeadLetterQueueName
			if msgBytes, err := json.Marshal(payload); err == nil {
				if err := client.Send(ctx, dlq, msgBytes); err != nil {
					logger.Error().Err(err).Str("dlq", dlq).Msg("Failed to send message to dead-letter queue")
				}
			} else {
				logger.Error().Err(err).Msg("Failed to marshal payload for dead-letter queue")
			}
			// Acknowledge (delete) the original message so it won't retry
			if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
				logger.Error().Err(err).Msg("Error deleting archive message after failure")
			}
			logger.Warn().
				Int("attempts", cfg.ArchiveMaxRetries).
				Str("submission_id", submission.ID).
				Err(uploadErr).
				Msg("Exhausted all archive retries; moving job to DLQ")
			continue
		}

		// Acknowledge message
		if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
			logger.Error().Err(err).Msg("Error deleting archive message")
		}

		// Stamp the row with its archive time
		if err := client.Exec(ctx, "UPDATE code_submissions SET archived_at=NOW() WHERE id=$1", submission.ID); err != nil {
			logger.Error().Err(err).Str("submission_id", submission.ID).Msg("Failed to stamp submission archived_at")
		}
	}
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		// Only remove the middleware if it exists.
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
