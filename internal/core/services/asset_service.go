package services

import (
	"context"
	"log/slog"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/lock"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/notifier"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

// assetService implements the customer-facing asset use cases. Write paths
// take the account WRITE lock first and open the transaction inside it, so
// the lock hold time is bounded by the transaction's duration.
type assetService struct {
	uow       portsrepo.UnitOfWork
	locks     *lock.Manager
	time      timekeeper.Service
	uid       idgen.Generator
	events    notifier.Publisher
	evaluator *assetEvaluator
	cashflows *cashflowService

	// valueDayOffset is the T+n day shift applied to withdrawals. A fixed
	// offset stands in for settlement-calendar computation.
	valueDayOffset int
}

// NewAssetService creates the customer asset use cases.
func NewAssetService(
	uow portsrepo.UnitOfWork,
	locks *lock.Manager,
	time timekeeper.Service,
	uid idgen.Generator,
	events notifier.Publisher,
	valueDayOffset int,
) portssvc.AssetSvcFacade {
	balances := newBalanceService(time, uid)
	return &assetService{
		uow:            uow,
		locks:          locks,
		time:           time,
		uid:            uid,
		events:         events,
		evaluator:      newAssetEvaluator(balances),
		cashflows:      newCashflowService(time, uid, balances),
		valueDayOffset: valueDayOffset,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// FindUnprocessedCashOut lists the actor's still-processable requests.
func (s *assetService) FindUnprocessedCashOut(ctx context.Context, actor domain.Actor) ([]domain.CashInOut, error) {
	var list []domain.CashInOut
	err := s.locks.WithLock(actor.ID, lock.Read, func() error {
		return s.uow.ReadOnly(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
			var err error
			list, err = r.CashInOuts().FindUnprocessedByAccount(ctx, actor.ID)
			return err
		})
	})
	return list, err
}

// Withdraw registers a withdrawal request for the actor's own account.
func (s *assetService) Withdraw(ctx context.Context, actor domain.Actor, req dto.WithdrawRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var cio domain.CashInOut
	err := s.locks.WithLock(actor.ID, lock.Write, func() error {
		return s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
			var err error
			cio, err = s.withdrawInTx(ctx, r, actor, req)
			return err
		})
	})
	if err != nil {
		return "", err
	}

	logger.Info("Withdrawal request accepted", slog.String("cash_in_out_id", cio.ID))
	// Downstream delivery is asynchronous; a failure there never rolls back
	// the accepted request.
	s.events.Publish(ctx, notifier.Event{Kind: notifier.EventFinishRequestWithdraw, Payload: dto.ToCashInOutResponse(cio)})
	return cio.ID, nil
}

func (s *assetService) withdrawInTx(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, req dto.WithdrawRequest) (domain.CashInOut, error) {
	tp := s.time.TimePoint()
	eventDay := tp.Day
	valueDay := s.time.DayPlus(s.valueDayOffset)

	// One validation pass, so the caller sees every warn together.
	v := &apperrors.Validator{}
	owned := actor.ID == req.AccountID
	v.CheckField(owned, "accountId", domain.ErrKeyEntityNotFound)
	v.CheckField(req.AbsAmount.Sign() > 0, "absAmount", domain.ErrKeyAbsAmountZero)
	if owned {
		ok, err := s.evaluator.CanWithdraw(ctx, r, req.AccountID, req.Currency, req.AbsAmount, valueDay)
		if err != nil {
			return domain.CashInOut{}, err
		}
		v.CheckField(ok, "absAmount", domain.ErrKeyCashInOutWithdrawal)
	}
	if err := v.Verify(); err != nil {
		return domain.CashInOut{}, err
	}

	acc, err := r.FiAccounts().FindByAccount(ctx, req.AccountID, domain.RemarkCashOut, req.Currency)
	if err != nil {
		return domain.CashInOut{}, err
	}
	selfAcc, err := r.SelfFiAccounts().Find(ctx, domain.RemarkCashOut, req.Currency)
	if err != nil {
		return domain.CashInOut{}, err
	}

	cio := domain.CashInOut{
		ID:                s.uid.Generate("CashInOut"),
		AccountID:         req.AccountID,
		Currency:          req.Currency,
		AbsAmount:         req.AbsAmount,
		Withdrawal:        true,
		RequestDay:        tp.Day,
		RequestDate:       tp.Date,
		EventDay:          eventDay,
		ValueDay:          valueDay,
		TargetFiCode:      acc.FiCode,
		TargetFiAccountID: acc.FiAccountID,
		SelfFiCode:        selfAcc.FiCode,
		SelfFiAccountID:   selfAcc.FiAccountID,
		StatusType:        domain.StatusUnprocessed,
		UpdatedBy:         actor.ID,
		UpdatedAt:         tp.Date,
	}
	if err := r.CashInOuts().Save(ctx, cio); err != nil {
		return domain.CashInOut{}, err
	}
	return cio, nil
}

// CancelCashOut cancels one of the actor's own requests. Cancellation is
// only possible strictly before the event day; afterwards the request is
// already in the hands of the reconciliation job.
func (s *assetService) CancelCashOut(ctx context.Context, actor domain.Actor, id string) (*domain.CashInOut, error) {
	var cancelled domain.CashInOut
	err := s.locks.WithLock(actor.ID, lock.Write, func() error {
		return s.uow.Do(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
			cio, err := r.CashInOuts().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if cio.AccountID != actor.ID {
				return apperrors.NewNotFound("CashInOut", id)
			}
			cancelled, err = s.cancelInTx(ctx, r, actor, *cio)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (s *assetService) cancelInTx(ctx context.Context, r portsrepo.Repositories, actor domain.Actor, cio domain.CashInOut) (domain.CashInOut, error) {
	tp := s.time.TimePoint()
	if err := cio.ValidateCancel(tp.Day); err != nil {
		return domain.CashInOut{}, err
	}
	cio.StatusType = domain.StatusCancelled
	cio.UpdatedBy = actor.ID
	cio.UpdatedAt = tp.Date
	if err := r.CashInOuts().Update(ctx, cio); err != nil {
		return domain.CashInOut{}, err
	}
	return cio, nil
}
