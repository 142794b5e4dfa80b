package command

import (
	"context"
	"fmt"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/events"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/shopspring/decimal"
)

// ---- mock implementations ----

type mockAccountStore struct {
	createFn            func(ctx context.Context, account *models.Account) error
	getByIDFn           func(ctx context.Context, id string) (*models.Account, error)
	findOneByCustomerFn func(ctx context.Context, customerID string) (*models.Account, error)

	createCalls int
	created     []*models.Account
}

func (m *mockAccountStore) Create(ctx context.Context, account *models.Account) error {
	m.createCalls++
	m.created = append(m.created, account)
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountStore) FindOneByCustomer(ctx context.Context, customerID string) (*models.Account, error) {
	if m.findOneByCustomerFn != nil {
		return m.findOneByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

type mockLedgerStore struct {
	createFn func(ctx context.Context, tx *models.Transaction) error
	countFn  func(ctx context.Context, accountID string, from, to time.Time) (int64, error)
	sumFn    func(ctx context.Context, accountID string) (decimal.Decimal, error)

	createCalls int
	created     []*models.Transaction
}

func (m *mockLedgerStore) Create(ctx context.Context, tx *models.Transaction) error {
	m.createCalls++
	m.created = append(m.created, tx)
	if m.createFn != nil {
		return m.createFn(ctx, tx)
	}
	return nil
}

func (m *mockLedgerStore) CountByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, accountID, from, to)
	}
	return 0, nil
}

func (m *mockLedgerStore) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.sumFn != nil {
		return m.sumFn(ctx, accountID)
	}
	return decimal.Zero, nil
}

type mockSequenceGenerator struct {
	next  int64
	calls int
}

func (m *mockSequenceGenerator) Next(ctx context.Context, counter string) (int64, error) {
	m.calls++
	m.next++
	return m.next, nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) PublishAccountCreated(ctx context.Context, ev events.AccountCreatedEvent) error {
	m.published = append(m.published, events.AccountCreated)
	return nil
}

func (m *mockPublisher) PublishTransactionCreated(ctx context.Context, ev events.TransactionCreatedEvent) error {
	m.published = append(m.published, events.TransactionCreated)
	return nil
}

func (m *mockPublisher) PublishTransferCompleted(ctx context.Context, ev events.TransferCompletedEvent) error {
	m.published = append(m.published, events.TransferCompleted)
	return nil
}

type mockGateway struct {
	createFn func(ctx context.Context, accountType string, cmd cqrs.CreateTransactionCommand) (int64, error)

	calls    int
	lastType string
	lastCmd  cqrs.CreateTransactionCommand
}

func (m *mockGateway) CreateTransaction(ctx context.Context, accountType string, cmd cqrs.CreateTransactionCommand) (int64, error) {
	m.calls++
	m.lastType = accountType
	m.lastCmd = cmd
	if m.createFn != nil {
		return m.createFn(ctx, accountType, cmd)
	}
	return 0, fmt.Errorf("not configured")
}

// ---- helpers ----

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func intPtr(i int) *int {
	return &i
}
