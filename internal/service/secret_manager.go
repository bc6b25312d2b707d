package service

import (
	"context"
	"fmt"

	"pyforge/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretManagerService resolves secrets the server must not carry in its
// environment. In production the JWT verification key lives in GCP Secret
// Manager; locally JWT_SECRET is used directly and this service stays idle.
type SecretManagerService interface {
	GetJWTSecret(ctx context.Context) (string, error)
	Close() error
}

type secretManagerService struct {
	client     *secretmanager.Client
	projectID  string
	secretName string
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:     client,
		projectID:  cfg.GCPProjectID,
		secretName: cfg.JWTSecretName,
	}, nil
}

// GetJWTSecret reads the latest version of the configured JWT secret.
func (s *secretManagerService) GetJWTSecret(ctx context.Context) (string, error) {
	if s.secretName == "" {
		return "", fmt.Errorf("JWT_SECRET_NAME is not set")
	}

	resourceName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, s.secretName)

	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resourceName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %w", resourceName, err)
	}

	return string(result.Payload.Data), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}
