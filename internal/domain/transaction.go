package domain

import "errors"

// ErrNoTransactions indicates that the ledger has no entries yet.
var ErrNoTransactions = errors.New("no transactions yet")

// DateDisplayLayout is the human readable creation time format of a
// transaction. It is display-only and never parsed back.
const DateDisplayLayout = "1/2/2006, 3:04:05 PM"

// Category is the transaction type.
type Category string

// All transaction categories.
const (
	CategoryDeposit    Category = "Deposit"
	CategoryWithdrawal Category = "Withdrawal"
	CategoryPayment    Category = "Payment"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Transaction holds a single immutable ledger entry.
type Transaction struct {
	Date     string   `json:"date"`
	Category Category `json:"type"`
	Detail   string   `json:"detail"`
	Amount   string   `json:"amount"` // signed: positive for deposits, negative otherwise
}

// Counters holds the number of successful transactions per category.
// They are incremented together with the ledger append and never
// recomputed from it.
type Counters struct {
	Deposit  int `json:"deposit"`
	Withdraw int `json:"withdraw"`
	Payment  int `json:"payment"`
}

// Total returns the overall number of counted transactions.
func (c Counters) Total() int {
	return c.Deposit + c.Withdraw + c.Payment
}
