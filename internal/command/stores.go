package command

import (
	"context"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/events"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/shopspring/decimal"
)

// AccountStore is the account persistence contract consumed by the command
// services. Lookups return (nil, nil) when no record exists; errors are
// infrastructure failures, never business rejections.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	FindOneByCustomer(ctx context.Context, customerID string) (*models.Account, error)
}

// LedgerStore is the append-only transaction ledger contract consumed by the
// command services.
type LedgerStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CountByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) (int64, error)
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// EventPublisher emits domain events after successful commits. Publish
// failures are logged by callers and never fail the operation.
type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, ev events.AccountCreatedEvent) error
	PublishTransactionCreated(ctx context.Context, ev events.TransactionCreatedEvent) error
	PublishTransferCompleted(ctx context.Context, ev events.TransferCompletedEvent) error
}
