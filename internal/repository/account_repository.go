package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	appredis "github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const accountViewKeyPrefix = "account:view:"

// accountCacheTTL bounds how long an account record may be served from Redis.
// Accounts are immutable after creation, so the TTL only limits memory, not
// staleness.
const accountCacheTTL = 5 * time.Minute

// AccountRepository persists fixed-account records in PostgreSQL (source of
// truth) and serves single-account reads through a Redis cache with a
// transparent Postgres fallback that warms the cache on every cold read.
type AccountRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.Account]
}

func NewAccountRepository(db *sql.DB, redisClient *goredis.Client) *AccountRepository {
	return &AccountRepository{
		db:    db,
		cache: appredis.NewViewCache[models.Account](redisClient, accountCacheTTL),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, customer_id, monthly_movement_limit, assigned_day_number_for_movement, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.CustomerID, account.MonthlyMovementLimit,
		account.AssignedDayNumberForMovement, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	r.cache.Set(ctx, accountViewKeyPrefix+account.ID, account)
	return nil
}

// GetByID returns the account or (nil, nil) when it does not exist.
// Redis is tried first; a Postgres hit warms the cache.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	cacheKey := accountViewKeyPrefix + id
	if account, ok := r.cache.Get(ctx, cacheKey); ok {
		return account, nil
	}

	query := `
		SELECT id, customer_id, monthly_movement_limit, assigned_day_number_for_movement, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.CustomerID, &account.MonthlyMovementLimit,
		&account.AssignedDayNumberForMovement, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &account)
	return &account, nil
}

// FindOneByCustomer returns the customer's account or (nil, nil) when the
// customer has none. At most one account per customer exists by invariant.
func (r *AccountRepository) FindOneByCustomer(ctx context.Context, customerID string) (*models.Account, error) {
	query := `
		SELECT id, customer_id, monthly_movement_limit, assigned_day_number_for_movement, created_at
		FROM accounts
		WHERE customer_id = $1
		LIMIT 1
	`
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&account.ID, &account.CustomerID, &account.MonthlyMovementLimit,
		&account.AssignedDayNumberForMovement, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by customer: %w", err)
	}
	return &account, nil
}

// ListByCustomer returns all accounts owned by the customer in creation order.
func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error) {
	query := `
		SELECT id, customer_id, monthly_movement_limit, assigned_day_number_for_movement, created_at
		FROM accounts
		WHERE customer_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.CustomerID, &account.MonthlyMovementLimit,
			&account.AssignedDayNumberForMovement, &account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
