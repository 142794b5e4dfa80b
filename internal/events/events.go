package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	AccountCreated     = "account.created"
	TransactionCreated = "transaction.created"
	TransferCompleted  = "transfer.completed"
)

// Stream names
const (
	AccountEventsStream     = "fixedaccount.account.events"
	TransactionEventsStream = "fixedaccount.transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID                    string          `json:"accountId"`
	CustomerID                   string          `json:"customerId"`
	AssignedDayNumberForMovement int             `json:"assignedDayNumberForMovement"`
	OpeningAmount                decimal.Decimal `json:"openingAmount"`
}

type TransactionCreatedEvent struct {
	TransactionID   string          `json:"transactionId"`
	AccountID       string          `json:"accountId"`
	OperationNumber int64           `json:"operationNumber"`
	Amount          decimal.Decimal `json:"amount"`
	Agent           string          `json:"agent"`
}

type TransferCompletedEvent struct {
	SourceAccountID   string          `json:"sourceAccountId"`
	TargetAccountID   string          `json:"targetAccountId"`
	TargetAccountType string          `json:"targetAccountType"`
	Amount            decimal.Decimal `json:"amount"`
	OperationNumber   int64           `json:"operationNumber"`
}
