package cqrs

import "time"

// GetBalanceQuery fetches the derived balance view of a single account.
type GetBalanceQuery struct {
	AccountID string
}

// ListBalancesQuery fetches one balance view per account of a customer.
type ListBalancesQuery struct {
	CustomerID string
}

// ListAccountsQuery fetches all accounts belonging to a customer.
type ListAccountsQuery struct {
	CustomerID string
}

// ListMovementsQuery fetches the transactions of an account registered inside
// the calendar month that contains Period.
type ListMovementsQuery struct {
	AccountID string
	Period    time.Time
}
