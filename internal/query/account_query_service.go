package query

import (
	"context"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/utils"
	"github.com/shopspring/decimal"
)

// AccountStore is the account read contract consumed by the query service.
// Lookups return (nil, nil) when no record exists.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error)
}

// LedgerStore is the ledger read contract consumed by the query service.
type LedgerStore interface {
	ListByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error)
	CountByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) (int64, error)
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
	SumByAccountBefore(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error)
}

// AccountQueryService serves every read of the account surface. Balances are
// recomputed from the ledger on each call, never cached.
type AccountQueryService struct {
	accounts AccountStore
	ledger   LedgerStore
}

func NewAccountQueryService(accounts AccountStore, ledger LedgerStore) *AccountQueryService {
	return &AccountQueryService{accounts: accounts, ledger: ledger}
}

// GetBalance returns the derived balance view of one account: the sum of all
// its transaction amounts plus how many movements remain available inside the
// current calendar month.
func (s *AccountQueryService) GetBalance(ctx context.Context, q cqrs.GetBalanceQuery) (*models.BalanceView, error) {
	if q.AccountID == "" {
		return nil, models.NewValidationError("Account Id is required")
	}
	account, err := s.accounts.GetByID(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, models.NewValidationError("Account not found")
	}
	return s.balanceView(ctx, account)
}

func (s *AccountQueryService) balanceView(ctx context.Context, account *models.Account) (*models.BalanceView, error) {
	balance, err := s.ledger.SumByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	monthStart, monthEnd := utils.MonthWindow(time.Now())
	registered, err := s.ledger.CountByAccountAndRange(ctx, account.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return &models.BalanceView{
		AccountID:                 account.ID,
		Type:                      models.AccountTypeLabel,
		Amount:                    balance,
		MonthlyMovementLimit:      account.MonthlyMovementLimit,
		MonthlyMovementsAvailable: int64(account.MonthlyMovementLimit) - registered,
	}, nil
}

// ListBalances returns one balance view per account of the customer,
// preserving account order.
func (s *AccountQueryService) ListBalances(ctx context.Context, q cqrs.ListBalancesQuery) ([]models.BalanceView, error) {
	if q.CustomerID == "" {
		return nil, models.NewValidationError("Customer ID is required")
	}
	accounts, err := s.accounts.ListByCustomer(ctx, q.CustomerID)
	if err != nil {
		return nil, err
	}
	views := make([]models.BalanceView, 0, len(accounts))
	for i := range accounts {
		view, err := s.balanceView(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// ListAccounts returns all accounts owned by the customer, empty when none.
func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.Account, error) {
	if q.CustomerID == "" {
		return nil, models.NewValidationError("Customer ID is required")
	}
	return s.accounts.ListByCustomer(ctx, q.CustomerID)
}

// ListMovements returns the transactions of an account registered inside the
// calendar month containing the queried period.
func (s *AccountQueryService) ListMovements(ctx context.Context, q cqrs.ListMovementsQuery) ([]models.Transaction, error) {
	if q.AccountID == "" {
		return nil, models.NewValidationError("Account Id is required")
	}
	if q.Period.IsZero() {
		return nil, models.NewValidationError("Period is required")
	}
	monthStart, monthEnd := utils.MonthWindow(q.Period)
	return s.ledger.ListByAccountAndRange(ctx, q.AccountID, monthStart, monthEnd)
}

// GetBalanceAsOf returns the account balance considering only transactions
// registered strictly before cutoff, zero when there are none.
func (s *AccountQueryService) GetBalanceAsOf(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	if accountID == "" {
		return decimal.Zero, models.NewValidationError("Account Id is required")
	}
	return s.ledger.SumByAccountBefore(ctx, accountID, cutoff)
}
