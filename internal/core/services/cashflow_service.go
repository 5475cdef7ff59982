package services

import (
	"context"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

// cashflowService drives the ledger-entry state machine. Like the balance
// service, it operates inside the caller's transaction.
type cashflowService struct {
	time     timekeeper.Service
	uid      idgen.Generator
	balances *balanceService
}

func newCashflowService(time timekeeper.Service, uid idgen.Generator, balances *balanceService) *cashflowService {
	return &cashflowService{time: time, uid: uid, balances: balances}
}

// Register records a new ledger entry. The settlement day may not lie in the
// past; an entry whose settlement day is already reached is realized into
// the balance immediately.
func (s *cashflowService) Register(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, reg domain.RegCashflow) (domain.Cashflow, error) {
	tp := s.time.TimePoint()
	if err := apperrors.Validate(func(v *apperrors.Validator) {
		v.CheckField(tp.BeforeEqualsDay(reg.ValueDay), "valueDay", domain.ErrKeyCashflowRegisterDay)
	}); err != nil {
		return domain.Cashflow{}, err
	}

	eventDay := tp.Day
	if reg.EventDay != nil {
		eventDay = domain.Day(*reg.EventDay)
	}
	cf := domain.Cashflow{
		ID:           s.uid.Generate("Cashflow"),
		AccountID:    reg.AccountID,
		Currency:     reg.Currency,
		Amount:       reg.Amount,
		CashflowType: reg.CashflowType,
		Remark:       reg.Remark,
		EventDay:     eventDay,
		EventDate:    tp.Date,
		ValueDay:     domain.Day(reg.ValueDay),
		StatusType:   domain.StatusUnprocessed,
		UpdatedBy:    actor.ID,
		UpdatedAt:    tp.Date,
	}
	if err := r.Cashflows().Save(ctx, cf); err != nil {
		return domain.Cashflow{}, err
	}
	if cf.CanRealize(tp.Day) {
		return s.Realize(ctx, r, actor, cf)
	}
	return cf, nil
}

// Realize posts the entry's signed amount into the account balance and marks
// it PROCESSED. Only an UNPROCESSED entry whose settlement day has arrived
// can be realized.
func (s *cashflowService) Realize(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, cf domain.Cashflow) (domain.Cashflow, error) {
	tp := s.time.TimePoint()
	if err := cf.ValidateRealize(tp.Day); err != nil {
		return domain.Cashflow{}, err
	}
	if _, err := s.balances.Add(ctx, r, cf.AccountID, cf.Currency, cf.Amount); err != nil {
		return domain.Cashflow{}, err
	}
	cf.StatusType = domain.StatusProcessed
	cf.UpdatedBy = actor.ID
	cf.UpdatedAt = tp.Date
	if err := r.Cashflows().Update(ctx, cf); err != nil {
		return domain.Cashflow{}, err
	}
	return cf, nil
}

// MarkError moves an UNPROCESSED entry to ERROR without touching the balance.
func (s *cashflowService) MarkError(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, cf domain.Cashflow) (domain.Cashflow, error) {
	if err := cf.ValidateError(); err != nil {
		return domain.Cashflow{}, err
	}
	cf.StatusType = domain.StatusError
	cf.UpdatedBy = actor.ID
	cf.UpdatedAt = s.time.Now()
	if err := r.Cashflows().Update(ctx, cf); err != nil {
		return domain.Cashflow{}, err
	}
	return cf, nil
}
