package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// JWT settings. JWT_SECRET carries the key material directly; when
	// JWT_SECRET_NAME is set the secret is fetched from GCP Secret Manager
	// instead and JWT_SECRET may stay empty.
	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTSecretName string `envconfig:"JWT_SECRET_NAME"`

	// Execution sandbox settings. The request timeout is the HTTP client's
	// deadline and must outlast the sandbox's own run timeout so the sandbox
	// limit fires first.
	SandboxBaseURL            string `envconfig:"SANDBOX_SERVICE_BASE_URL" required:"true"`
	SandboxLanguage           string `envconfig:"SANDBOX_LANGUAGE" default:"python"`
	SandboxVersion            string `envconfig:"SANDBOX_VERSION" default:"3.11"`
	SandboxRunTimeoutMS       int    `envconfig:"SANDBOX_RUN_TIMEOUT_MS" default:"10000"`
	SandboxRequestTimeoutMS   int    `envconfig:"SANDBOX_REQUEST_TIMEOUT_MS" default:"15000"`
	SandboxCompileMemoryLimit int64  `envconfig:"SANDBOX_COMPILE_MEMORY_LIMIT_BYTES" default:"100000000"`

	// Pub/Sub settings
	GCPProjectID                  string `envconfig:"GCP_PROJECT_ID" required:"true"`
	PubSubCompletionTopic         string `envconfig:"PUBSUB_COMPLETION_TOPIC" default:"lesson-completions"`
	PubSubEmulatorHost            string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`
	DLQEndpointURL                string `envconfig:"DLQ_ENDPOINT_URL"`

	// Object storage for archived submissions
	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`

	// Archive orchestrator settings
	ArchiveQueueName           string `envconfig:"ARCHIVE_QUEUE_NAME" default:"submission_archive_queue"`
	ArchivePollTimeoutSec      int    `envconfig:"ARCHIVE_POLL_TIMEOUT_SEC" default:"30"`
	ArchivePollMaxMsg          int    `envconfig:"ARCHIVE_POLL_MAX_MSG" default:"1"`
	ArchiveMaxRetries          int    `envconfig:"ARCHIVE_MAX_RETRIES" default:"5"`
	ArchiveBackoffInitialSec   int    `envconfig:"ARCHIVE_BACKOFF_INITIAL_SEC" default:"1"`
	ArchiveBackoffMaxSec       int    `envconfig:"ARCHIVE_BACKOFF_MAX_SEC" default:"60"`
	ArchiveDeadLetterQueueName string `envconfig:"ARCHIVE_DEAD_LETTER_QUEUE_NAME" default:"submission_archive_queue_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SandboxRequestTimeoutMS <= cfg.SandboxRunTimeoutMS {
		return nil, fmt.Errorf("SANDBOX_REQUEST_TIMEOUT_MS (%d) must be greater than SANDBOX_RUN_TIMEOUT_MS (%d)",
			cfg.SandboxRequestTimeoutMS, cfg.SandboxRunTimeoutMS)
	}
	return &cfg, nil
}
