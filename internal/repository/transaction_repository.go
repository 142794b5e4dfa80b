package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionRepository is the append-only ledger store. Transactions are
// never updated or deleted; balances and movement counts are aggregates over
// the rows of one account.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, agent, description, amount, operation_number, register_date, system_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.AccountID, tx.Agent, tx.Description,
		tx.Amount, tx.OperationNumber, tx.RegisterDate, tx.SystemGenerated,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID returns the transaction or (nil, nil) when it does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `
		SELECT id, account_id, agent, description, amount, operation_number, register_date, system_generated
		FROM transactions
		WHERE id = $1
	`
	var tx models.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.AccountID, &tx.Agent, &tx.Description,
		&tx.Amount, &tx.OperationNumber, &tx.RegisterDate, &tx.SystemGenerated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// ListByAccount returns every transaction of an account in register order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, agent, description, amount, operation_number, register_date, system_generated
		FROM transactions
		WHERE account_id = $1
		ORDER BY register_date
	`
	return r.list(ctx, query, accountID)
}

// ListByAccountAndRange returns the transactions of an account registered
// inside [from, to] inclusive.
func (r *TransactionRepository) ListByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, agent, description, amount, operation_number, register_date, system_generated
		FROM transactions
		WHERE account_id = $1 AND register_date >= $2 AND register_date <= $3
		ORDER BY register_date
	`
	return r.list(ctx, query, accountID, from, to)
}

// CountByAccountAndRange counts the movements of an account registered inside
// [from, to] inclusive, used by the monthly movement-limit gate and the
// available-movement view. System-seeded rows do not consume the monthly
// movement allowance; the exclusion keys off the server-controlled
// system_generated column, never off request fields.
func (r *TransactionRepository) CountByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1 AND NOT system_generated AND register_date >= $2 AND register_date <= $3
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, accountID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// SumByAccount returns the balance of an account: the sum of every
// transaction amount, zero when the account has no transactions.
func (r *TransactionRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1`
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

// SumByAccountBefore returns the balance of an account considering only
// transactions registered strictly before cutoff.
func (r *TransactionRepository) SumByAccountBefore(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1 AND register_date < $2`
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, accountID, cutoff).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.AccountID, &tx.Agent, &tx.Description,
			&tx.Amount, &tx.OperationNumber, &tx.RegisterDate, &tx.SystemGenerated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
