package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/events"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCommandService opens fixed accounts. Each customer may hold at most
// one, and every new account is seeded with a system-generated opening
// transaction equal to the opening amount.
type AccountCommandService struct {
	accounts             AccountStore
	ledger               LedgerStore
	sequences            sequence.Generator
	publisher            EventPublisher
	minimumOpeningAmount decimal.Decimal
}

func NewAccountCommandService(
	accounts AccountStore,
	ledger LedgerStore,
	sequences sequence.Generator,
	publisher EventPublisher,
	minimumOpeningAmount decimal.Decimal,
) *AccountCommandService {
	return &AccountCommandService{
		accounts:             accounts,
		ledger:               ledger,
		sequences:            sequences,
		publisher:            publisher,
		minimumOpeningAmount: minimumOpeningAmount,
	}
}

// CreateAccount validates the command gate by gate, first failure wins.
// On success it performs exactly one account insert and one ledger insert.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	if cmd.CustomerID == "" {
		return nil, models.NewValidationError("Customer ID is required")
	}
	if cmd.AssignedDayNumberForMovement == nil {
		return nil, models.NewValidationError("Assigned day number for movement is required")
	}
	day := *cmd.AssignedDayNumberForMovement
	if day < 1 || day > 28 {
		return nil, models.NewValidationError("Assigned day number for movement must be between 1 and 28")
	}
	if cmd.OpeningAmount == nil {
		return nil, models.NewValidationError("Opening amount is required")
	}
	if cmd.OpeningAmount.LessThan(s.minimumOpeningAmount) {
		return nil, models.NewValidationError(fmt.Sprintf("The minimum opening amount is %s", s.minimumOpeningAmount))
	}

	existing, err := s.accounts.FindOneByCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Customer already has an account")
	}

	now := time.Now()
	account := &models.Account{
		ID:                           uuid.NewString(),
		CustomerID:                   cmd.CustomerID,
		MonthlyMovementLimit:         1, // fixed accounts allow a single monthly movement
		AssignedDayNumberForMovement: day,
		CreatedAt:                    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	nextSeq, err := s.sequences.Next(ctx, sequence.TransactionSequence)
	if err != nil {
		return nil, err
	}
	opening := &models.Transaction{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		Agent:           "-",
		Description:     "Opening account",
		Amount:          *cmd.OpeningAmount,
		OperationNumber: nextSeq,
		RegisterDate:    now,
		// Only this path may seed a system row; the flag exempts the opening
		// transaction from the monthly movement count and is never accepted
		// from a request.
		SystemGenerated: true,
	}
	// The account insert is not compensated if this write fails; the two
	// stores share no transaction boundary.
	if err := s.ledger.Create(ctx, opening); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishAccountCreated(ctx, events.AccountCreatedEvent{
		AccountID:                    account.ID,
		CustomerID:                   account.CustomerID,
		AssignedDayNumberForMovement: account.AssignedDayNumberForMovement,
		OpeningAmount:                opening.Amount,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}
