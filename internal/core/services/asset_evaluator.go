package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-ledger/cash_ledger_app/internal/core/calculator"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
)

// assetEvaluator answers withdrawal-authorization questions for one account
// by projecting the balance forward to a settlement day.
type assetEvaluator struct {
	balances *balanceService
}

func newAssetEvaluator(balances *balanceService) *assetEvaluator {
	return &assetEvaluator{balances: balances}
}

// CanWithdraw projects the account's balance to valueDay: the current
// balance, plus every unrealized ledger entry settling on or before
// valueDay (signed), minus every still-pending withdrawal request's amount,
// minus the requested amount. The withdrawal is authorized when the
// projection stays non-negative. No intermediate rounding is applied.
func (s *assetEvaluator) CanWithdraw(ctx context.Context, r portsrepo.Repositories, accountID, currency string, absAmount decimal.Decimal, valueDay time.Time) (bool, error) {
	cb, err := s.balances.GetOrNew(ctx, r, accountID, currency)
	if err != nil {
		return false, err
	}
	calc := calculator.New(cb.Amount)

	unrealized, err := r.Cashflows().FindUnrealized(ctx, accountID, currency, valueDay)
	if err != nil {
		return false, err
	}
	for _, cf := range unrealized {
		calc.Add(cf.Amount)
	}

	pending, err := r.CashInOuts().FindUnprocessedByCurrency(ctx, accountID, currency, true)
	if err != nil {
		return false, err
	}
	for _, cio := range pending {
		calc.Subtract(cio.AbsAmount)
	}

	calc.Subtract(absAmount)
	return calc.Decimal().Sign() >= 0, nil
}
