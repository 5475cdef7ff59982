package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cashflow represents one ledger-entry row.
type Cashflow struct {
	CashflowID   string          `db:"cashflow_id"`
	AccountID    string          `db:"account_id"`
	Currency     string          `db:"currency"`
	Amount       decimal.Decimal `db:"amount"`
	CashflowType string          `db:"cashflow_type"`
	Remark       string          `db:"remark"`
	EventDay     time.Time       `db:"event_day"`
	EventDate    time.Time       `db:"event_date"`
	ValueDay     time.Time       `db:"value_day"`
	StatusType   string          `db:"status_type"`
	UpdatedBy    string          `db:"updated_by"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
