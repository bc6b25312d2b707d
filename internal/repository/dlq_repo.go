package repository

import (
	"context"
	"fmt"

	"pyforge/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DLQRepository persists dead-lettered Pub/Sub messages.
type DLQRepository interface {
	Create(ctx context.Context, message *model.DeadLetterMessage) error
}

type dlqRepository struct {
	pool *pgxpool.Pool
}

// NewDLQRepository creates a new DLQRepository.
func NewDLQRepository(pool *pgxpool.Pool) DLQRepository {
	return &dlqRepository{pool: pool}
}

func (r *dlqRepository) Create(ctx context.Context, message *model.DeadLetterMessage) error {
	const q = `
        INSERT INTO dead_letter_messages (subscription_name, message_id, payload, attributes, status)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.pool.Exec(ctx, q,
		message.SubscriptionName,
		message.MessageID,
		message.Payload,
		message.Attributes,
		message.Status,
	)
	if err != nil {
		return fmt.Errorf("persisting dead-letter message %s: %w", message.MessageID, err)
	}
	return nil
}
