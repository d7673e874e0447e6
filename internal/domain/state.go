package domain

import "github.com/shopspring/decimal"

// AppState is the aggregate that is persisted as a single unit: the
// account, the newest-first ledger and the per-category counters.
type AppState struct {
	User    User
	Balance decimal.Decimal
	Moves   []Transaction
	Counts  Counters
}
