package cqrs

import "github.com/shopspring/decimal"

// CreateAccountCommand opens a fixed account for a customer. The monthly
// movement limit is never part of the command; the service forces it to 1.
type CreateAccountCommand struct {
	CustomerID                   string
	AssignedDayNumberForMovement *int
	OpeningAmount                *decimal.Decimal
}

// CreateTransactionCommand registers a movement against an account.
// CreatedByCommission marks transfer-generated legs, which are exempt from
// the assigned-day gate.
type CreateTransactionCommand struct {
	AccountID           string
	Agent               string
	Description         string
	Amount              *decimal.Decimal
	CreatedByCommission bool
}

// TransferCommand moves funds from a fixed account to another account,
// possibly held at a sibling account service of a different type.
type TransferCommand struct {
	SourceAccountID   string
	TargetAccountID   string
	TargetAccountType string
	Amount            *decimal.Decimal
}
