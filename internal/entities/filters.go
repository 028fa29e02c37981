package entities

import "time"

// TransactionFilter narrows a user's transaction history query. Zero values
// mean "no restriction".
type TransactionFilter struct {
	Type   string
	Status string
	Year   int
	Month  time.Month
}
