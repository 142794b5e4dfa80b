package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/shopspring/decimal"
)

// ---- mock implementations ----

type mockAccountStore struct {
	getByIDFn        func(ctx context.Context, id string) (*models.Account, error)
	listByCustomerFn func(ctx context.Context, customerID string) ([]models.Account, error)
}

func (m *mockAccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	if m.listByCustomerFn != nil {
		return m.listByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

type mockLedgerStore struct {
	listFn      func(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error)
	countFn     func(ctx context.Context, accountID string, from, to time.Time) (int64, error)
	sumFn       func(ctx context.Context, accountID string) (decimal.Decimal, error)
	sumBeforeFn func(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error)
}

func (m *mockLedgerStore) ListByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID, from, to)
	}
	return nil, nil
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

func (m *mockLedgerStore) SumByAccountBefore(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	if m.sumBeforeFn != nil {
		return m.sumBeforeFn(ctx, accountID, cutoff)
	}
	return decimal.Zero, nil
}

func assertValidationError(t *testing.T, err error, wantMsg string) {
	t.Helper()
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Message != wantMsg {
		t.Fatalf("message = %q, want %q", ve.Message, wantMsg)
	}
}

// ---- tests ----

func TestGetBalanceRequiresAccountID(t *testing.T) {
	svc := NewAccountQueryService(&mockAccountStore{}, &mockLedgerStore{})
	_, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{})
	assertValidationError(t, err, "Account Id is required")
}

func TestGetBalanceAccountNotFound(t *testing.T) {
	svc := NewAccountQueryService(&mockAccountStore{}, &mockLedgerStore{})
	_, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{AccountID: "missing"})
	assertValidationError(t, err, "Account not found")
}

func TestGetBalanceComputesViewFromLedger(t *testing.T) {
	account := &models.Account{
		ID:                           "acc-1",
		CustomerID:                   "cust-1",
		MonthlyMovementLimit:         1,
		AssignedDayNumberForMovement: 20,
	}
	accounts := &mockAccountStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
	}
	ledger := &mockLedgerStore{
		sumFn: func(ctx context.Context, accountID string) (decimal.Decimal, error) {
			return decimal.NewFromInt(100), nil
		},
		countFn: func(ctx context.Context, accountID string, from, to time.Time) (int64, error) {
			return 0, nil
		},
	}
	svc := NewAccountQueryService(accounts, ledger)

	view, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.AccountID != "acc-1" || view.Type != "Fixed Account" {
		t.Fatalf("view identity: %+v", view)
	}
	if !view.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("amount = %s, want 100", view.Amount)
	}
	if view.MonthlyMovementLimit != 1 || view.MonthlyMovementsAvailable != 1 {
		t.Fatalf("limit=%d available=%d, want 1 and 1", view.MonthlyMovementLimit, view.MonthlyMovementsAvailable)
	}
}

func TestGetBalanceCountsRegisteredMovements(t *testing.T) {
	account := &models.Account{ID: "acc-1", MonthlyMovementLimit: 1}
	accounts := &mockAccountStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
	}
	ledger := &mockLedgerStore{
		countFn: func(ctx context.Context, accountID string, from, to time.Time) (int64, error) {
			return 1, nil
		},
	}
	svc := NewAccountQueryService(accounts, ledger)

	view, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.MonthlyMovementsAvailable != 0 {
		t.Fatalf("available = %d, want 0", view.MonthlyMovementsAvailable)
	}
}

func TestGetBalanceIsIdempotentAcrossReads(t *testing.T) {
	account := &models.Account{ID: "acc-1", MonthlyMovementLimit: 1}
	accounts := &mockAccountStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
	}
	ledger := &mockLedgerStore{
		sumFn: func(ctx context.Context, accountID string) (decimal.Decimal, error) {
			return decimal.RequireFromString("123.45"), nil
		},
	}
	svc := NewAccountQueryService(accounts, ledger)

	first, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetBalance(context.Background(), cqrs.GetBalanceQuery{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Amount.Equal(second.Amount) {
		t.Fatalf("repeated reads disagree: %s vs %s", first.Amount, second.Amount)
	}
}

func TestListBalancesPreservesAccountOrder(t *testing.T) {
	accounts := &mockAccountStore{
		listByCustomerFn: func(ctx context.Context, customerID string) ([]models.Account, error) {
			return []models.Account{
				{ID: "acc-1", MonthlyMovementLimit: 1},
				{ID: "acc-2", MonthlyMovementLimit: 1},
			}, nil
		},
	}
	balances := map[string]decimal.Decimal{
		"acc-1": decimal.NewFromInt(100),
		"acc-2": decimal.NewFromInt(250),
	}
	ledger := &mockLedgerStore{
		sumFn: func(ctx context.Context, accountID string) (decimal.Decimal, error) {
			return balances[accountID], nil
		},
	}
	svc := NewAccountQueryService(accounts, ledger)

	views, err := svc.ListBalances(context.Background(), cqrs.ListBalancesQuery{CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
	if views[0].AccountID != "acc-1" || views[1].AccountID != "acc-2" {
		t.Fatalf("account order not preserved: %s, %s", views[0].AccountID, views[1].AccountID)
	}
	if !views[1].Amount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("second balance = %s, want 250", views[1].Amount)
	}
}

func TestListBalancesRequiresCustomerID(t *testing.T) {
	svc := NewAccountQueryService(&mockAccountStore{}, &mockLedgerStore{})
	_, err := svc.ListBalances(context.Background(), cqrs.ListBalancesQuery{})
	assertValidationError(t, err, "Customer ID is required")
}

func TestListAccountsRequiresCustomerID(t *testing.T) {
	svc := NewAccountQueryService(&mockAccountStore{}, &mockLedgerStore{})
	_, err := svc.ListAccounts(context.Background(), cqrs.ListAccountsQuery{})
	assertValidationError(t, err, "Customer ID is required")
}

func TestListMovementsValidatesInput(t *testing.T) {
	svc := NewAccountQueryService(&mockAccountStore{}, &mockLedgerStore{})

	_, err := svc.ListMovements(context.Background(), cqrs.ListMovementsQuery{Period: time.Now()})
	assertValidationError(t, err, "Account Id is required")

	_, err = svc.ListMovements(context.Background(), cqrs.ListMovementsQuery{AccountID: "acc-1"})
	assertValidationError(t, err, "Period is required")
}

func TestListMovementsQueriesTheCalendarMonthWindow(t *testing.T) {
	var gotFrom, gotTo time.Time
	ledger := &mockLedgerStore{
		listFn: func(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error) {
			gotFrom, gotTo = from, to
			return []models.Transaction{{ID: "tx-1", AccountID: accountID}}, nil
		},
	}
	svc := NewAccountQueryService(&mockAccountStore{}, ledger)

	period := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	movements, err := svc.ListMovements(context.Background(), cqrs.ListMovementsQuery{
		AccountID: "acc-1",
		Period:    period,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("len(movements) = %d, want 1", len(movements))
	}

	wantFrom := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	wantTo := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.Local)
	if !gotFrom.Equal(wantFrom) || !gotTo.Equal(wantTo) {
		t.Fatalf("window = [%s, %s], want [%s, %s]", gotFrom, gotTo, wantFrom, wantTo)
	}
}

func TestGetBalanceAsOfPassesCutoff(t *testing.T) {
	var gotCutoff time.Time
	ledger := &mockLedgerStore{
		sumBeforeFn: func(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
			gotCutoff = cutoff
			return decimal.NewFromInt(75), nil
		},
	}
	svc := NewAccountQueryService(&mockAccountStore{}, ledger)

	cutoff := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.Local)
	balance, err := svc.GetBalanceAsOf(context.Background(), "acc-1", cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("balance = %s, want 75", balance)
	}
	if !gotCutoff.Equal(cutoff) {
		t.Fatalf("cutoff = %s, want %s", gotCutoff, cutoff)
	}
}
