package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
)

// CashflowType classifies the origin of a ledger entry.
type CashflowType string

const (
	CashflowCashIn  CashflowType = "CASH_IN"
	CashflowCashOut CashflowType = "CASH_OUT"
)

// Remark constants for ledger entries.
const (
	RemarkCashIn        = "cashIn"
	RemarkCashInAdjust  = "cashInAdjust"
	RemarkCashInCancel  = "cashInCancel"
	RemarkCashOut       = "cashOut"
	RemarkCashOutAdjust = "cashOutAdjust"
	RemarkCashOutCancel = "cashOutCancel"
)

// Cashflow is a ledger-effecting entry. EventDay is the business day the
// entry was recorded; ValueDay is the settlement day on or after which the
// signed Amount may be realized into the account balance.
type Cashflow struct {
	ID           string
	AccountID    string
	Currency     string
	Amount       decimal.Decimal
	CashflowType CashflowType
	Remark       string
	EventDay     time.Time
	EventDate    time.Time
	ValueDay     time.Time
	StatusType   ActionStatusType
	UpdatedBy    string
	UpdatedAt    time.Time
}

// CanRealize reports whether the settlement day has arrived.
func (c Cashflow) CanRealize(day time.Time) bool {
	return AfterEqualsDay(day, c.ValueDay)
}

// ValidateRealize checks the realize transition preconditions.
func (c Cashflow) ValidateRealize(day time.Time) error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Check(c.CanRealize(day), ErrKeyCashflowRealizeDay)
		v.Check(c.StatusType == StatusUnprocessed, ErrKeyStatusProcessing)
	})
}

// ValidateError checks the error transition preconditions. An entry that has
// already reached a terminal or errored state cannot be errored again.
func (c Cashflow) ValidateError() error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Check(c.StatusType == StatusUnprocessed, ErrKeyStatusProcessing)
	})
}
