package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/lock"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

// assetAdminService implements the organization-side asset use cases and
// the daily reconciliation jobs. Each batch item is handled under its own
// account WRITE lock and its own transaction; one bad item never aborts the
// run.
type assetAdminService struct {
	uow       portsrepo.UnitOfWork
	locks     *lock.Manager
	time      timekeeper.Service
	cashflows *cashflowService
}

// NewAssetAdminService creates the organization asset use cases.
func NewAssetAdminService(
	uow portsrepo.UnitOfWork,
	locks *lock.Manager,
	time timekeeper.Service,
	uid idgen.Generator,
) portssvc.AssetAdminSvcFacade {
	balances := newBalanceService(time, uid)
	return &assetAdminService{
		uow:       uow,
		locks:     locks,
		time:      time,
		cashflows: newCashflowService(time, uid, balances),
	}
}

var _ portssvc.AssetAdminSvcFacade = (*assetAdminService)(nil)

// FindCashInOut searches requests by currency, status set and event-day range.
func (s *assetAdminService) FindCashInOut(ctx context.Context, p portsrepo.FindCashInOut) ([]domain.CashInOut, error) {
	var list []domain.CashInOut
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		var err error
		list, err = r.CashInOuts().Find(ctx, p)
		return err
	})
	return list, err
}

// RegisterCashflow records a ledger entry directly, e.g. an adjustment.
func (s *assetAdminService) RegisterCashflow(ctx context.Context, actor domain.Actor, reg domain.RegCashflow) (*domain.Cashflow, error) {
	var cf domain.Cashflow
	err := s.locks.WithLock(reg.AccountID, lock.Write, func() error {
		return s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
			var err error
			cf, err = s.cashflows.Register(ctx, r, actor, reg)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

// CloseCashOut processes every withdrawal request due today into a ledger
// entry. A failing item is moved to ERROR; a failure of that fallback is
// logged and swallowed so the run continues.
func (s *assetAdminService) CloseCashOut(ctx context.Context) portssvc.BatchResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	actor := domain.System()

	var due []domain.CashInOut
	if err := s.uow.ReadOnly(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		var err error
		due, err = r.CashInOuts().FindDueUnprocessed(ctx, s.time.Day())
		return err
	}); err != nil {
		logger.Error("Failure listing due cash out requests", slog.String("error", err.Error()))
		return portssvc.BatchResult{}
	}

	result := portssvc.BatchResult{Targets: len(due)}
	for _, cio := range due {
		cio := cio
		err := s.locks.WithLock(cio.AccountID, lock.Write, func() error {
			err := s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
				_, err := s.processInTx(ctx, r, actor, cio)
				return err
			})
			if err == nil {
				result.Processed++
				return nil
			}
			logger.Error("Failure closing cash out", slog.String("cash_in_out_id", cio.ID), slog.String("error", err.Error()))
			result.Errored++
			s.markCashInOutError(ctx, actor, cio, logger)
			return nil
		})
		if err != nil {
			logger.Error("Failure closing cash out", slog.String("cash_in_out_id", cio.ID), slog.String("error", err.Error()))
			result.Errored++
		}
	}
	return result
}

// processInTx drives the process transition: validate, register the linked
// ledger entry, mark PROCESSED.
func (s *assetAdminService) processInTx(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, cio domain.CashInOut) (domain.CashInOut, error) {
	tp := s.time.TimePoint()
	if err := cio.ValidateProcess(tp.Day); err != nil {
		return domain.CashInOut{}, err
	}
	cf, err := s.cashflows.Register(ctx, r, actor, cio.ToRegCashflow())
	if err != nil {
		return domain.CashInOut{}, err
	}
	cio.StatusType = domain.StatusProcessed
	cio.CashflowID = cf.ID
	cio.UpdatedBy = actor.ID
	cio.UpdatedAt = tp.Date
	if err := r.CashInOuts().Update(ctx, cio); err != nil {
		return domain.CashInOut{}, err
	}
	return cio, nil
}

// markCashInOutError attempts the ERROR fallback in its own transaction. A
// secondary failure is logged only; the batch moves on.
func (s *assetAdminService) markCashInOutError(ctx context.Context, actor domain.Actor, cio domain.CashInOut, logger *slog.Logger) {
	err := s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		if err := cio.ValidateMarkError(); err != nil {
			return err
		}
		cio.StatusType = domain.StatusError
		cio.UpdatedBy = actor.ID
		cio.UpdatedAt = s.time.Now()
		return r.CashInOuts().Update(ctx, cio)
	})
	if err == nil {
		return
	}
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Failure marking cash out errored", slog.String("cash_in_out_id", cio.ID), slog.String("error", err.Error()))
	} else {
		logger.Error("Failure marking cash out errored", slog.String("cash_in_out_id", cio.ID), slog.String("error", err.Error()))
	}
}

// RealizeCashflow posts every ledger entry whose settlement day has arrived
// into the balances, with the same per-item isolation as CloseCashOut.
func (s *assetAdminService) RealizeCashflow(ctx context.Context) portssvc.BatchResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	actor := domain.System()

	var due []domain.Cashflow
	if err := s.uow.ReadOnly(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		var err error
		due, err = r.Cashflows().FindDueRealize(ctx, s.time.Day())
		return err
	}); err != nil {
		logger.Error("Failure listing due cashflows", slog.String("error", err.Error()))
		return portssvc.BatchResult{}
	}

	result := portssvc.BatchResult{Targets: len(due)}
	for _, cf := range due {
		cf := cf
		err := s.locks.WithLock(cf.AccountID, lock.Write, func() error {
			err := s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
				_, err := s.cashflows.Realize(ctx, r, actor, cf)
				return err
			})
			if err == nil {
				result.Processed++
				return nil
			}
			logger.Error("Failure realizing cashflow", slog.String("cashflow_id", cf.ID), slog.String("error", err.Error()))
			result.Errored++
			s.markCashflowError(ctx, actor, cf, logger)
			return nil
		})
		if err != nil {
			logger.Error("Failure realizing cashflow", slog.String("cashflow_id", cf.ID), slog.String("error", err.Error()))
			result.Errored++
		}
	}
	return result
}

func (s *assetAdminService) markCashflowError(ctx context.Context, actor domain.Actor, cf domain.Cashflow, logger *slog.Logger) {
	err := s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		_, err := s.cashflows.MarkError(ctx, r, actor, cf)
		return err
	})
	if err == nil {
		return
	}
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Failure marking cashflow errored", slog.String("cashflow_id", cf.ID), slog.String("error", err.Error()))
	} else {
		logger.Error("Failure marking cashflow errored", slog.String("cashflow_id", cf.ID), slog.String("error", err.Error()))
	}
}
