package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
)

// CashInOut is a customer cash movement request (withdrawal or deposit).
// EventDay is the business day the request becomes eligible to be processed
// into a Cashflow; ValueDay is the settlement day of that Cashflow.
// CashflowID is set only once the request reaches PROCESSED.
type CashInOut struct {
	ID                string
	AccountID         string
	Currency          string
	AbsAmount         decimal.Decimal
	Withdrawal        bool
	RequestDay        time.Time
	RequestDate       time.Time
	EventDay          time.Time
	ValueDay          time.Time
	TargetFiCode      string
	TargetFiAccountID string
	SelfFiCode        string
	SelfFiAccountID   string
	StatusType        ActionStatusType
	UpdatedBy         string
	UpdatedAt         time.Time
	CashflowID        string
}

// ValidateProcess checks the process transition preconditions: the request
// must still be processable and the event day must have arrived.
func (c CashInOut) ValidateProcess(day time.Time) error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Check(c.StatusType.IsUnprocessed(), ErrKeyStatusProcessing)
		v.Check(AfterEqualsDay(day, c.EventDay), ErrKeyCashInOutAfterEqualsDay)
	})
}

// ValidateCancel checks the cancel transition preconditions: cancellation is
// possible only strictly before the event day.
func (c CashInOut) ValidateCancel(day time.Time) error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Check(c.StatusType.IsUnprocessing(), ErrKeyStatusProcessing)
		v.Check(BeforeDay(day, c.EventDay), ErrKeyCashInOutBeforeEqualsDay)
	})
}

// ValidateMarkError checks the error transition preconditions. Only a request
// that has not been touched yet can be marked errored; errored requests are
// retried or cancelled, never double-erred.
func (c CashInOut) ValidateMarkError() error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Check(c.StatusType == StatusUnprocessed, ErrKeyStatusProcessing)
	})
}

// ToRegCashflow builds the ledger entry registration for a processed
// request: withdrawals debit the account, deposits credit it.
func (c CashInOut) ToRegCashflow() RegCashflow {
	amount := c.AbsAmount
	cashflowType := CashflowCashIn
	remark := RemarkCashIn
	if c.Withdrawal {
		amount = c.AbsAmount.Neg()
		cashflowType = CashflowCashOut
		remark = RemarkCashOut
	}
	eventDay := c.EventDay
	return RegCashflow{
		AccountID:    c.AccountID,
		Currency:     c.Currency,
		Amount:       amount,
		CashflowType: cashflowType,
		Remark:       remark,
		EventDay:     &eventDay,
		ValueDay:     c.ValueDay,
	}
}

// RegCashflow is a Cashflow registration request. EventDay defaults to the
// current business day when nil.
type RegCashflow struct {
	AccountID    string
	Currency     string
	Amount       decimal.Decimal
	CashflowType CashflowType
	Remark       string
	EventDay     *time.Time
	ValueDay     time.Time
}
