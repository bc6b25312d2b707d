package pubsub

import (
	"context"
	"fmt"

	"pyforge/internal/config"

	"cloud.google.com/go/pubsub"
)

// Publisher emits platform events, currently only lesson.completed. The
// progress service treats publishing as best effort, so implementations
// report errors rather than retry.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

// PubSubPublisher emits events through Google Pub/Sub. Topics (e.g. the
// lesson-completions topic) are resolved by name per publish; the client is
// shared across requests and safe for concurrent use.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher connects a PubSubPublisher to the configured GCP project.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends one event payload to the named topic and returns the
// server-assigned message ID once the publish is confirmed.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}
