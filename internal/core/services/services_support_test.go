package services_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/notifier"
)

// memStore is a shared in-memory database for service tests. The fake unit
// of work hands out repositories bound to it; rollback is not modeled since
// the scenarios under test fail before mutating.
type memStore struct {
	mu             sync.Mutex
	accounts       map[string]domain.Account
	fiAccounts     []domain.FiAccount
	selfFiAccounts []domain.SelfFiAccount
	balances       map[string]domain.CashBalance
	cashflows      map[string]domain.Cashflow
	cashInOuts     map[string]domain.CashInOut
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   make(map[string]domain.Account),
		balances:   make(map[string]domain.CashBalance),
		cashflows:  make(map[string]domain.Cashflow),
		cashInOuts: make(map[string]domain.CashInOut),
	}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Do(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	return fn(ctx, &memRepos{store: u.store})
}

func (u *memUow) ReadOnly(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	return fn(ctx, &memRepos{store: u.store})
}

type memRepos struct {
	store *memStore
}

func (r *memRepos) Accounts() portsrepo.AccountRepository             { return &memAccountRepo{r.store} }
func (r *memRepos) FiAccounts() portsrepo.FiAccountRepository         { return &memFiAccountRepo{r.store} }
func (r *memRepos) SelfFiAccounts() portsrepo.SelfFiAccountRepository { return &memSelfFiRepo{r.store} }
func (r *memRepos) CashBalances() portsrepo.CashBalanceRepository     { return &memBalanceRepo{r.store} }
func (r *memRepos) Cashflows() portsrepo.CashflowRepository           { return &memCashflowRepo{r.store} }
func (r *memRepos) CashInOuts() portsrepo.CashInOutRepository         { return &memCashInOutRepo{r.store} }

type memAccountRepo struct{ s *memStore }

func (r *memAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFound("Account", id)
	}
	return &acc, nil
}

type memFiAccountRepo struct{ s *memStore }

func (r *memFiAccountRepo) FindByAccount(ctx context.Context, accountID, category, currency string) (*domain.FiAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, fi := range r.s.fiAccounts {
		if fi.AccountID == accountID && fi.Category == category && fi.Currency == currency {
			fi := fi
			return &fi, nil
		}
	}
	return nil, apperrors.NewNotFound("FiAccount", accountID)
}

type memSelfFiRepo struct{ s *memStore }

func (r *memSelfFiRepo) Find(ctx context.Context, category, currency string) (*domain.SelfFiAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, fi := range r.s.selfFiAccounts {
		if fi.Category == category && fi.Currency == currency {
			fi := fi
			return &fi, nil
		}
	}
	return nil, apperrors.NewNotFound("SelfFiAccount", category)
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) FindByBaseDay(ctx context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cb := range r.s.balances {
		if cb.AccountID == accountID && cb.Currency == currency && domain.SameDay(cb.BaseDay, baseDay) {
			cb := cb
			return &cb, nil
		}
	}
	return nil, nil
}

func (r *memBalanceRepo) FindLatest(ctx context.Context, accountID, currency string) (*domain.CashBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *domain.CashBalance
	for _, cb := range r.s.balances {
		cb := cb
		if cb.AccountID != accountID || cb.Currency != currency {
			continue
		}
		if latest == nil || cb.BaseDay.After(latest.BaseDay) {
			latest = &cb
		}
	}
	return latest, nil
}

func (r *memBalanceRepo) Save(ctx context.Context, cb domain.CashBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[cb.ID] = cb
	return nil
}

func (r *memBalanceRepo) UpdateAmount(ctx context.Context, cb domain.CashBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.balances[cb.ID]
	if !ok {
		return apperrors.NewNotFound("CashBalance", cb.ID)
	}
	existing.Amount = cb.Amount
	existing.UpdatedAt = cb.UpdatedAt
	r.s.balances[cb.ID] = existing
	return nil
}

type memCashflowRepo struct{ s *memStore }

func (r *memCashflowRepo) FindByID(ctx context.Context, id string) (*domain.Cashflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cf, ok := r.s.cashflows[id]
	if !ok {
		return nil, apperrors.NewNotFound("Cashflow", id)
	}
	return &cf, nil
}

func (r *memCashflowRepo) Save(ctx context.Context, cf domain.Cashflow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cashflows[cf.ID] = cf
	return nil
}

func (r *memCashflowRepo) Update(ctx context.Context, cf domain.Cashflow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cashflows[cf.ID]; !ok {
		return apperrors.NewNotFound("Cashflow", cf.ID)
	}
	r.s.cashflows[cf.ID] = cf
	return nil
}

func (r *memCashflowRepo) FindUnrealized(ctx context.Context, accountID, currency string, valueDayTo time.Time) ([]domain.Cashflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Cashflow
	for _, cf := range r.s.cashflows {
		if cf.AccountID == accountID && cf.Currency == currency &&
			cf.StatusType == domain.StatusUnprocessed && domain.BeforeEqualsDay(cf.ValueDay, valueDayTo) {
			out = append(out, cf)
		}
	}
	sortCashflows(out)
	return out, nil
}

func (r *memCashflowRepo) FindDueRealize(ctx context.Context, day time.Time) ([]domain.Cashflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Cashflow
	for _, cf := range r.s.cashflows {
		if cf.StatusType == domain.StatusUnprocessed && domain.BeforeEqualsDay(cf.ValueDay, day) {
			out = append(out, cf)
		}
	}
	sortCashflows(out)
	return out, nil
}

func sortCashflows(list []domain.Cashflow) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

type memCashInOutRepo struct{ s *memStore }

func (r *memCashInOutRepo) FindByID(ctx context.Context, id string) (*domain.CashInOut, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cio, ok := r.s.cashInOuts[id]
	if !ok {
		return nil, apperrors.NewNotFound("CashInOut", id)
	}
	return &cio, nil
}

func (r *memCashInOutRepo) Save(ctx context.Context, cio domain.CashInOut) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cashInOuts[cio.ID] = cio
	return nil
}

func (r *memCashInOutRepo) Update(ctx context.Context, cio domain.CashInOut) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cashInOuts[cio.ID]; !ok {
		return apperrors.NewNotFound("CashInOut", cio.ID)
	}
	r.s.cashInOuts[cio.ID] = cio
	return nil
}

func (r *memCashInOutRepo) Find(ctx context.Context, p portsrepo.FindCashInOut) ([]domain.CashInOut, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CashInOut
	for _, cio := range r.s.cashInOuts {
		if p.Currency != "" && cio.Currency != p.Currency {
			continue
		}
		if len(p.StatusTypes) > 0 && !containsStatus(p.StatusTypes, cio.StatusType) {
			continue
		}
		if p.UpdFromDay != nil && domain.BeforeDay(cio.EventDay, *p.UpdFromDay) {
			continue
		}
		if p.UpdToDay != nil && domain.BeforeDay(*p.UpdToDay, cio.EventDay) {
			continue
		}
		out = append(out, cio)
	}
	sortCashInOuts(out)
	return out, nil
}

func (r *memCashInOutRepo) FindDueUnprocessed(ctx context.Context, day time.Time) ([]domain.CashInOut, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CashInOut
	for _, cio := range r.s.cashInOuts {
		if cio.StatusType == domain.StatusUnprocessed && domain.SameDay(cio.EventDay, day) {
			out = append(out, cio)
		}
	}
	sortCashInOuts(out)
	return out, nil
}

func (r *memCashInOutRepo) FindUnprocessedByAccount(ctx context.Context, accountID string) ([]domain.CashInOut, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CashInOut
	for _, cio := range r.s.cashInOuts {
		if cio.AccountID == accountID && cio.StatusType.IsUnprocessed() {
			out = append(out, cio)
		}
	}
	sortCashInOuts(out)
	return out, nil
}

func (r *memCashInOutRepo) FindUnprocessedByCurrency(ctx context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CashInOut
	for _, cio := range r.s.cashInOuts {
		if cio.AccountID == accountID && cio.Currency == currency &&
			cio.Withdrawal == withdrawal && cio.StatusType.IsUnprocessed() {
			out = append(out, cio)
		}
	}
	sortCashInOuts(out)
	return out, nil
}

func sortCashInOuts(list []domain.CashInOut) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

func containsStatus(types []domain.ActionStatusType, st domain.ActionStatusType) bool {
	for _, t := range types {
		if t == st {
			return true
		}
	}
	return false
}

// hookUow is a memUow that runs a callback before each write transaction,
// for fault injection.
type hookUow struct {
	store *memStore
	onDo  func(call int)
	calls int
}

func (u *hookUow) Do(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	u.calls++
	if u.onDo != nil {
		u.onDo(u.calls)
	}
	return fn(ctx, &memRepos{store: u.store})
}

func (u *hookUow) ReadOnly(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	return fn(ctx, &memRepos{store: u.store})
}

// recordingHandler captures slog records so tests can assert on log output.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) has(level slog.Level, msg string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, rec := range h.records {
		if rec.Level == level && rec.Message == msg {
			return true
		}
	}
	return false
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event notifier.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) Events() []notifier.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notifier.Event(nil), p.events...)
}
