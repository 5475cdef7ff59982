package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
)

// WithdrawRequest asks for a cash withdrawal from the actor's own account.
type WithdrawRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Currency  string          `json:"currency" binding:"required,len=3"`
	AbsAmount decimal.Decimal `json:"absAmount" binding:"required"`
}

// RegisterCashflowRequest registers a ledger entry directly (adjustments,
// corrections). EventDay defaults to the current business day when omitted.
type RegisterCashflowRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Currency     string          `json:"currency" binding:"required,len=3"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CashflowType string          `json:"cashflowType" binding:"required,oneof=CASH_IN CASH_OUT"`
	Remark       string          `json:"remark" binding:"required"`
	EventDay     *time.Time      `json:"eventDay" time_format:"2006-01-02"`
	ValueDay     time.Time       `json:"valueDay" binding:"required" time_format:"2006-01-02"`
}

// ToRegCashflow converts the request into the domain registration value.
func (r RegisterCashflowRequest) ToRegCashflow() domain.RegCashflow {
	return domain.RegCashflow{
		AccountID:    r.AccountID,
		Currency:     r.Currency,
		Amount:       r.Amount,
		CashflowType: domain.CashflowType(r.CashflowType),
		Remark:       r.Remark,
		EventDay:     r.EventDay,
		ValueDay:     r.ValueDay,
	}
}

// FindCashInOutQuery is the filtered request search. The day range bounds
// the event day; from must not be after to.
type FindCashInOutQuery struct {
	Currency    string     `form:"currency"`
	StatusTypes []string   `form:"statusTypes"`
	UpdFromDay  *time.Time `form:"updFromDay" time_format:"2006-01-02"`
	UpdToDay    *time.Time `form:"updToDay" time_format:"2006-01-02"`
}

// ToParams validates the cross-field day-range rule and converts the query
// into repository parameters.
func (q FindCashInOutQuery) ToParams() (portsrepo.FindCashInOut, error) {
	if q.UpdFromDay != nil && q.UpdToDay != nil && q.UpdFromDay.After(*q.UpdToDay) {
		return portsrepo.FindCashInOut{}, apperrors.NewFieldValidation("updFromDay", domain.ErrKeyBeforeEqualsDay)
	}
	p := portsrepo.FindCashInOut{
		Currency:   q.Currency,
		UpdFromDay: q.UpdFromDay,
		UpdToDay:   q.UpdToDay,
	}
	for _, s := range q.StatusTypes {
		p.StatusTypes = append(p.StatusTypes, domain.ActionStatusType(s))
	}
	return p, nil
}

// CashInOutResponse is the API shape of a cash movement request.
type CashInOutResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountID"`
	Currency    string          `json:"currency"`
	AbsAmount   decimal.Decimal `json:"absAmount"`
	Withdrawal  bool            `json:"withdrawal"`
	RequestDay  string          `json:"requestDay"`
	RequestDate time.Time       `json:"requestDate"`
	EventDay    string          `json:"eventDay"`
	ValueDay    string          `json:"valueDay"`
	StatusType  string          `json:"statusType"`
	CashflowID  string          `json:"cashflowID,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToCashInOutResponse converts a domain request.
func ToCashInOutResponse(c domain.CashInOut) CashInOutResponse {
	return CashInOutResponse{
		ID:          c.ID,
		AccountID:   c.AccountID,
		Currency:    c.Currency,
		AbsAmount:   c.AbsAmount,
		Withdrawal:  c.Withdrawal,
		RequestDay:  dayString(c.RequestDay),
		RequestDate: c.RequestDate,
		EventDay:    dayString(c.EventDay),
		ValueDay:    dayString(c.ValueDay),
		StatusType:  string(c.StatusType),
		CashflowID:  c.CashflowID,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToListCashInOutResponse converts a slice of domain requests.
func ToListCashInOutResponse(list []domain.CashInOut) []CashInOutResponse {
	res := make([]CashInOutResponse, len(list))
	for i, c := range list {
		res[i] = ToCashInOutResponse(c)
	}
	return res
}

// CashflowResponse is the API shape of a ledger entry.
type CashflowResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"accountID"`
	Currency     string          `json:"currency"`
	Amount       decimal.Decimal `json:"amount"`
	CashflowType string          `json:"cashflowType"`
	Remark       string          `json:"remark"`
	EventDay     string          `json:"eventDay"`
	ValueDay     string          `json:"valueDay"`
	StatusType   string          `json:"statusType"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToCashflowResponse converts a domain entry.
func ToCashflowResponse(c domain.Cashflow) CashflowResponse {
	return CashflowResponse{
		ID:           c.ID,
		AccountID:    c.AccountID,
		Currency:     c.Currency,
		Amount:       c.Amount,
		CashflowType: string(c.CashflowType),
		Remark:       c.Remark,
		EventDay:     dayString(c.EventDay),
		ValueDay:     dayString(c.ValueDay),
		StatusType:   string(c.StatusType),
		UpdatedAt:    c.UpdatedAt,
	}
}

func dayString(t time.Time) string {
	return t.Format("2006-01-02")
}
