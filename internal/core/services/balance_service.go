package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fin-ledger/cash_ledger_app/internal/core/calculator"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

// balanceService maintains the per-account, per-currency daily balance
// snapshots. Methods take the transaction-bound Repositories of the calling
// use case so that balance effects share its transaction.
type balanceService struct {
	time timekeeper.Service
	uid  idgen.Generator
}

func newBalanceService(time timekeeper.Service, uid idgen.Generator) *balanceService {
	return &balanceService{time: time, uid: uid}
}

// GetOrNew returns today's balance snapshot, creating it when absent by
// carrying the most recent prior snapshot's amount forward (or zero when the
// pair has no history). Prior snapshots are never modified.
func (s *balanceService) GetOrNew(ctx context.Context, r portsrepo.Repositories, accountID, currency string) (domain.CashBalance, error) {
	baseDay := s.time.Day()
	existing, err := r.CashBalances().FindByBaseDay(ctx, accountID, currency, baseDay)
	if err != nil {
		return domain.CashBalance{}, err
	}
	if existing != nil {
		return *existing, nil
	}
	return s.create(ctx, r, accountID, currency)
}

func (s *balanceService) create(ctx context.Context, r portsrepo.Repositories, accountID, currency string) (domain.CashBalance, error) {
	tp := s.time.TimePoint()
	amount := decimal.Zero
	prev, err := r.CashBalances().FindLatest(ctx, accountID, currency)
	if err != nil {
		return domain.CashBalance{}, err
	}
	if prev != nil {
		// roll forward
		amount = prev.Amount
	}
	cb := domain.CashBalance{
		ID:        s.uid.Generate("CashBalance"),
		AccountID: accountID,
		Currency:  currency,
		BaseDay:   tp.Day,
		Amount:    amount,
		UpdatedAt: tp.Date,
	}
	if err := r.CashBalances().Save(ctx, cb); err != nil {
		return domain.CashBalance{}, err
	}
	return cb, nil
}

// Add applies delta to today's snapshot at the currency's canonical scale
// with round-down, updating the same row in place.
func (s *balanceService) Add(ctx context.Context, r portsrepo.Repositories, accountID, currency string, delta decimal.Decimal) (domain.CashBalance, error) {
	cb, err := s.GetOrNew(ctx, r, accountID, currency)
	if err != nil {
		return domain.CashBalance{}, err
	}
	scale := domain.CurrencyScale(currency)
	cb.Amount = calculator.New(cb.Amount).
		Scale(scale, calculator.RoundDown).
		Add(delta).
		Decimal()
	cb.UpdatedAt = s.time.Now()
	if err := r.CashBalances().UpdateAmount(ctx, cb); err != nil {
		return domain.CashBalance{}, err
	}
	return cb, nil
}
