package services

import (
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/lock"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/notifier"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
	"github.com/fin-ledger/cash_ledger_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The lock manager and timekeeper are shared
// across all services so locks and business time stay consistent.
func NewServiceContainer(
	cfg *config.Config,
	uow portsrepo.UnitOfWork,
	locks *lock.Manager,
	time timekeeper.Service,
	uid idgen.Generator,
	events notifier.Publisher,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Asset:      NewAssetService(uow, locks, time, uid, events, cfg.WithdrawValueDayOffset),
		AssetAdmin: NewAssetAdminService(uow, locks, time, uid),
		System:     NewSystemService(time),
		Auth:       NewAuthService(uow, cfg.JWTSecret, cfg.JWTExpiryDuration),
	}
}
