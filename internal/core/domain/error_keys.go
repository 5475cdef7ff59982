package domain

// Message keys for generic domain validation failures.
const (
	ErrKeyException        = "error.Exception"
	ErrKeyEntityNotFound   = "error.Entity.notFound"
	ErrKeyStatusProcessing = "error.ActionStatusType.processing"
	ErrKeyBeforeEqualsDay  = "error.Date.beforeEqualsDay"
	ErrKeyAbsAmountZero    = "error.domain.AbsAmount.zero"
	ErrKeyAccountInactive  = "error.Account.loadActive"
)

// Message keys for asset domain validation failures.
const (
	ErrKeyCashflowRealizeDay       = "error.Cashflow.realizeDay"
	ErrKeyCashflowRegisterDay      = "error.Cashflow.beforeEqualsDay"
	ErrKeyCashInOutWithdrawal      = "error.CashInOut.withdrawAmount"
	ErrKeyCashInOutAfterEqualsDay  = "error.CashInOut.afterEqualsDay"
	ErrKeyCashInOutBeforeEqualsDay = "error.CashInOut.beforeEqualsDay"
)
