package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBalance represents one daily balance snapshot row. Rows are
// append-only per (account, currency, base_day); only amount and updated_at
// change in place.
type CashBalance struct {
	CashBalanceID string          `db:"cash_balance_id"`
	AccountID     string          `db:"account_id"`
	Currency      string          `db:"currency"`
	BaseDay       time.Time       `db:"base_day"`
	Amount        decimal.Decimal `db:"amount"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
