package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends domain events to this service's Redis streams. The typed
// methods are the only publishing surface; stream and event names stay inside
// this package so a caller cannot emit onto a foreign stream or misname an
// event.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishAccountCreated announces a newly opened account.
func (p *Publisher) PublishAccountCreated(ctx context.Context, ev AccountCreatedEvent) error {
	return p.publish(ctx, AccountEventsStream, AccountCreated, ev)
}

// PublishTransactionCreated announces a committed ledger movement.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, ev TransactionCreatedEvent) error {
	return p.publish(ctx, TransactionEventsStream, TransactionCreated, ev)
}

// PublishTransferCompleted announces a transfer whose debit leg committed and
// whose credit leg succeeded, locally or on a sibling service.
func (p *Publisher) PublishTransferCompleted(ctx context.Context, ev TransferCompletedEvent) error {
	return p.publish(ctx, TransactionEventsStream, TransferCompleted, ev)
}

func (p *Publisher) publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
