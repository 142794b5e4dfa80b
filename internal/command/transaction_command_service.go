package command

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/events"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/gateway"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/sequence"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/utils"
	"github.com/google/uuid"
)

// TransactionCommandService registers movements against fixed accounts and
// executes transfers to accounts of this or sibling services. Validation is an
// ordered gate pipeline: the first failing gate rejects the command and no
// later gate runs.
type TransactionCommandService struct {
	accounts  AccountStore
	ledger    LedgerStore
	sequences sequence.Generator
	gateway   gateway.AccountGateway
	publisher EventPublisher
	locks     *accountLocker
}

func NewTransactionCommandService(
	accounts AccountStore,
	ledger LedgerStore,
	sequences sequence.Generator,
	gw gateway.AccountGateway,
	publisher EventPublisher,
) *TransactionCommandService {
	return &TransactionCommandService{
		accounts:  accounts,
		ledger:    ledger,
		sequences: sequences,
		gateway:   gw,
		publisher: publisher,
		locks:     newAccountLocker(),
	}
}

// CreateTransaction runs the full validation pipeline and, on success, commits
// exactly one ledger insert stamped with a fresh operation number. A rejected
// command performs no insert and no sequence increment.
func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if cmd.AccountID == "" {
		return nil, models.NewValidationError("Account ID is required")
	}
	if cmd.Agent == "" {
		return nil, models.NewValidationError("Agent is required")
	}
	if cmd.Amount == nil {
		return nil, models.NewValidationError("Amount is required")
	}
	if cmd.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}

	// Serialise read-decide-write per account: without this, concurrent
	// commands could both pass the limit and sufficiency gates.
	unlock := s.locks.Lock(cmd.AccountID)
	defer unlock()

	account, err := s.accounts.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, models.NewValidationError("Account not found")
	}

	now := time.Now()
	// Commission-generated movements (the credit leg of a transfer) are
	// exempt from the assigned-day restriction.
	if !cmd.CreatedByCommission && now.Day() != account.AssignedDayNumberForMovement {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Can only register a movement on day %d of the month", account.AssignedDayNumberForMovement))
	}

	monthStart, monthEnd := utils.MonthWindow(now)
	registered, err := s.ledger.CountByAccountAndRange(ctx, account.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	if registered >= int64(account.MonthlyMovementLimit) {
		return nil, models.NewValidationError(fmt.Sprintf(
			"You can only register a maximum of %d monthly movements", account.MonthlyMovementLimit))
	}

	balance, err := s.ledger.SumByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if balance.Add(*cmd.Amount).IsNegative() {
		return nil, models.NewValidationError("Insufficient balance")
	}

	nextSeq, err := s.sequences.Next(ctx, sequence.TransactionSequence)
	if err != nil {
		return nil, err
	}
	tx := &models.Transaction{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		Agent:           cmd.Agent,
		Description:     cmd.Description,
		Amount:          *cmd.Amount,
		OperationNumber: nextSeq,
		RegisterDate:    now,
	}
	if err := s.ledger.Create(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishTransactionCreated(ctx, events.TransactionCreatedEvent{
		TransactionID:   tx.ID,
		AccountID:       tx.AccountID,
		OperationNumber: tx.OperationNumber,
		Amount:          tx.Amount,
		Agent:           tx.Agent,
	}); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}
	return tx, nil
}

// Transfer debits the source account through the full validation pipeline and
// then credits the target: locally when the target is a fixed account,
// otherwise through the sibling account service for the target type. Both
// credit legs are commission-flagged, so the target's assigned-day gate does
// not apply. Returns the source-side operation number.
//
// The source debit is NOT rolled back when the credit leg fails; the caller
// sees the credit error and must reconcile.
func (s *TransactionCommandService) Transfer(ctx context.Context, cmd cqrs.TransferCommand) (int64, error) {
	if cmd.SourceAccountID == "" {
		return 0, models.NewValidationError("Source account ID is required")
	}
	if cmd.TargetAccountID == "" {
		return 0, models.NewValidationError("Target account ID is required")
	}
	if cmd.TargetAccountType == "" {
		return 0, models.NewValidationError("Target account type is required")
	}
	if cmd.Amount == nil {
		return 0, models.NewValidationError("Amount is required")
	}

	debitAmount := cmd.Amount.Neg()
	debit, err := s.CreateTransaction(ctx, cqrs.CreateTransactionCommand{
		AccountID:   cmd.SourceAccountID,
		Agent:       "Transfer",
		Description: fmt.Sprintf("Transfer to account %s", cmd.TargetAccountID),
		Amount:      &debitAmount,
	})
	if err != nil {
		return 0, err
	}

	credit := cqrs.CreateTransactionCommand{
		AccountID:           cmd.TargetAccountID,
		Agent:               "Transfer",
		Description:         fmt.Sprintf("Transfer from account %s", cmd.SourceAccountID),
		Amount:              cmd.Amount,
		CreatedByCommission: true,
	}
	if strings.EqualFold(cmd.TargetAccountType, models.AccountType) {
		if _, err := s.CreateTransaction(ctx, credit); err != nil {
			return 0, err
		}
	} else {
		if _, err := s.gateway.CreateTransaction(ctx, cmd.TargetAccountType, credit); err != nil {
			return 0, err
		}
	}

	if err := s.publisher.PublishTransferCompleted(ctx, events.TransferCompletedEvent{
		SourceAccountID:   cmd.SourceAccountID,
		TargetAccountID:   cmd.TargetAccountID,
		TargetAccountType: strings.ToUpper(cmd.TargetAccountType),
		Amount:            *cmd.Amount,
		OperationNumber:   debit.OperationNumber,
	}); err != nil {
		log.Printf("Failed to publish transfer.completed event: %v", err)
	}
	return debit.OperationNumber, nil
}
