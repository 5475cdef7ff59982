// Package services declares the use-case facades consumed by the HTTP layer.
package services

import (
	"context"
	"time"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
)

// AssetSvcFacade is the customer-facing asset use cases. Every call takes
// the acting customer explicitly.
type AssetSvcFacade interface {
	// FindUnprocessedCashOut lists the actor's still-processable withdrawal
	// requests, newest first.
	FindUnprocessedCashOut(ctx context.Context, actor domain.Actor) ([]domain.CashInOut, error)

	// Withdraw registers a withdrawal request after the available-balance
	// authorization check and returns the new request id.
	Withdraw(ctx context.Context, actor domain.Actor, req dto.WithdrawRequest) (string, error)

	// CancelCashOut cancels one of the actor's own requests before its
	// event day.
	CancelCashOut(ctx context.Context, actor domain.Actor, id string) (*domain.CashInOut, error)
}

// BatchResult summarizes one reconciliation job run.
type BatchResult struct {
	Targets   int `json:"targets"`
	Processed int `json:"processed"`
	Errored   int `json:"errored"`
}

// AssetAdminSvcFacade is the organization-side asset use cases, including
// the daily reconciliation jobs.
type AssetAdminSvcFacade interface {
	// FindCashInOut searches requests by currency, status set and event-day
	// range.
	FindCashInOut(ctx context.Context, p portsrepo.FindCashInOut) ([]domain.CashInOut, error)

	// RegisterCashflow records a ledger entry directly.
	RegisterCashflow(ctx context.Context, actor domain.Actor, reg domain.RegCashflow) (*domain.Cashflow, error)

	// CloseCashOut processes every withdrawal request due today, isolating
	// failures per item.
	CloseCashOut(ctx context.Context) BatchResult

	// RealizeCashflow posts every ledger entry whose settlement day has
	// arrived into the balances, isolating failures per item.
	RealizeCashflow(ctx context.Context) BatchResult
}

// SystemSvcFacade is the system-operation use cases.
type SystemSvcFacade interface {
	// ProcessDay advances the business day by one and returns the new day.
	ProcessDay(ctx context.Context, actor domain.Actor) (time.Time, error)
}

// AuthSvcFacade authenticates accounts and issues API tokens.
type AuthSvcFacade interface {
	// Login verifies the account is active and returns a signed bearer
	// token binding it as the actor.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
