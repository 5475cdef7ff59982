package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashInOut represents one cash movement request row. CashflowID is NULL
// until the request is processed into a ledger entry.
type CashInOut struct {
	CashInOutID       string          `db:"cash_in_out_id"`
	AccountID         string          `db:"account_id"`
	Currency          string          `db:"currency"`
	AbsAmount         decimal.Decimal `db:"abs_amount"`
	Withdrawal        bool            `db:"withdrawal"`
	RequestDay        time.Time       `db:"request_day"`
	RequestDate       time.Time       `db:"request_date"`
	EventDay          time.Time       `db:"event_day"`
	ValueDay          time.Time       `db:"value_day"`
	TargetFiCode      string          `db:"target_fi_code"`
	TargetFiAccountID string          `db:"target_fi_account_id"`
	SelfFiCode        string          `db:"self_fi_code"`
	SelfFiAccountID   string          `db:"self_fi_account_id"`
	StatusType        string          `db:"status_type"`
	UpdatedBy         string          `db:"updated_by"`
	UpdatedAt         time.Time       `db:"updated_at"`
	CashflowID        string          `db:"cashflow_id"`
}
