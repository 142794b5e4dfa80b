package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a fixed (savings) account. One per customer; movements are only
// allowed on the assigned day of the month, at most MonthlyMovementLimit per
// calendar month. The record is immutable after creation.
type Account struct {
	ID                           string    `json:"id"`
	CustomerID                   string    `json:"customerId"`
	MonthlyMovementLimit         int       `json:"monthlyMovementLimit"`
	AssignedDayNumberForMovement int       `json:"assignedDayNumberForMovement"`
	CreatedAt                    time.Time `json:"createdTimestamp"`
}

// Transaction is an immutable, append-only ledger entry. Amount is signed:
// positive credits, negative debits. OperationNumber comes from the shared
// sequence counter and is never supplied by the caller. SystemGenerated marks
// rows seeded by the service itself (the opening transaction); it is set only
// server-side, never taken from a request, because the monthly movement count
// excludes these rows.
type Transaction struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"accountId"`
	Agent           string          `json:"agent"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	OperationNumber int64           `json:"operationNumber"`
	RegisterDate    time.Time       `json:"registerDate"`
	SystemGenerated bool            `json:"-"`
}
