// Package repositories declares the persistence interfaces consumed by the
// ledger core. Implementations live under internal/repositories.
package repositories

import (
	"context"
	"time"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
)

// AccountRepository loads customers.
type AccountRepository interface {
	// FindByID returns the account or an apperrors.NotFoundError.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// FiAccountRepository resolves customer financial-institution routing records.
type FiAccountRepository interface {
	// FindByAccount returns the routing record for one account, usage
	// category and currency, or an apperrors.NotFoundError.
	FindByAccount(ctx context.Context, accountID, category, currency string) (*domain.FiAccount, error)
}

// SelfFiAccountRepository resolves the service company's settlement accounts.
type SelfFiAccountRepository interface {
	// Find returns the settlement record for one usage category and
	// currency, or an apperrors.NotFoundError.
	Find(ctx context.Context, category, currency string) (*domain.SelfFiAccount, error)
}

// CashBalanceRepository persists balance snapshots.
type CashBalanceRepository interface {
	// FindByBaseDay returns the snapshot for the exact base day, or nil when
	// none exists.
	FindByBaseDay(ctx context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error)
	// FindLatest returns the most recent snapshot regardless of base day, or
	// nil when the account/currency pair has no history.
	FindLatest(ctx context.Context, accountID, currency string) (*domain.CashBalance, error)
	// Save inserts a new snapshot row.
	Save(ctx context.Context, cb domain.CashBalance) error
	// UpdateAmount updates the amount and updatedAt of an existing row.
	UpdateAmount(ctx context.Context, cb domain.CashBalance) error
}

// CashflowRepository persists ledger entries.
type CashflowRepository interface {
	// FindByID returns the entry or an apperrors.NotFoundError.
	FindByID(ctx context.Context, id string) (*domain.Cashflow, error)
	// Save inserts a new entry.
	Save(ctx context.Context, cf domain.Cashflow) error
	// Update persists a state transition on an existing entry.
	Update(ctx context.Context, cf domain.Cashflow) error
	// FindUnrealized returns the UNPROCESSED entries for one account and
	// currency with valueDay <= valueDayTo, sorted by id.
	FindUnrealized(ctx context.Context, accountID, currency string, valueDayTo time.Time) ([]domain.Cashflow, error)
	// FindDueRealize returns every UNPROCESSED entry with valueDay <= day,
	// sorted by id. Batch driver query.
	FindDueRealize(ctx context.Context, day time.Time) ([]domain.Cashflow, error)
}

// FindCashInOut is the closed query-parameter set for request searches.
// UpdFromDay/UpdToDay bound the event day; when both are set, the lower
// bound must not be after the upper bound.
type FindCashInOut struct {
	Currency    string
	StatusTypes []domain.ActionStatusType
	UpdFromDay  *time.Time
	UpdToDay    *time.Time
}

// CashInOutRepository persists cash movement requests.
type CashInOutRepository interface {
	// FindByID returns the request or an apperrors.NotFoundError.
	FindByID(ctx context.Context, id string) (*domain.CashInOut, error)
	// Save inserts a new request.
	Save(ctx context.Context, cio domain.CashInOut) error
	// Update persists a state transition on an existing request.
	Update(ctx context.Context, cio domain.CashInOut) error
	// Find returns requests matching p, sorted by update timestamp
	// descending.
	Find(ctx context.Context, p FindCashInOut) ([]domain.CashInOut, error)
	// FindDueUnprocessed returns every UNPROCESSED request with
	// eventDay = day, sorted by id. Batch driver query; errored requests are
	// excluded so that retry stays an operational decision.
	FindDueUnprocessed(ctx context.Context, day time.Time) ([]domain.CashInOut, error)
	// FindUnprocessedByAccount returns the still-processable requests
	// (UNPROCESSED, PROCESSING or ERROR) of one account, newest first.
	FindUnprocessedByAccount(ctx context.Context, accountID string) ([]domain.CashInOut, error)
	// FindUnprocessedByCurrency returns the still-processable requests of
	// one account, currency and direction, sorted by id.
	FindUnprocessedByCurrency(ctx context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error)
}

// Repositories bundles every repository bound to one transaction.
type Repositories interface {
	Accounts() AccountRepository
	FiAccounts() FiAccountRepository
	SelfFiAccounts() SelfFiAccountRepository
	CashBalances() CashBalanceRepository
	Cashflows() CashflowRepository
	CashInOuts() CashInOutRepository
}

// UnitOfWork opens one all-or-nothing transaction boundary around fn. The
// callback's Repositories all observe the same transaction; fn returning an
// error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}
