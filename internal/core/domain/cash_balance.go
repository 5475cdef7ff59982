package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBalance is the per-account, per-currency balance snapshot for one
// business day. Snapshots are append-only history: a new row is created per
// day (carrying the prior amount forward) and only the amount of the current
// row is ever updated in place.
type CashBalance struct {
	ID        string
	AccountID string
	Currency  string
	BaseDay   time.Time
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
