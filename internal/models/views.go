package models

import "github.com/shopspring/decimal"

// BalanceView is the derived point-in-time balance projection of an account.
// It is always recomputed from the ledger on read and never cached.
type BalanceView struct {
	AccountID                 string          `json:"accountId"`
	Type                      string          `json:"type"`
	Amount                    decimal.Decimal `json:"amount"`
	MonthlyMovementLimit      int             `json:"monthlyMovementLimit"`
	MonthlyMovementsAvailable int64           `json:"monthlyMovementsAvailable"`
}

// AccountTypeLabel is the fixed type label reported in balance views.
const AccountTypeLabel = "Fixed Account"

// AccountType identifies this service's account type when routing transfers
// between account services.
const AccountType = "FIXED"
