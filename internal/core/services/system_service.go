package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

// systemService implements the system-operation use cases.
type systemService struct {
	time timekeeper.Service
}

// NewSystemService creates the system-operation use cases.
func NewSystemService(time timekeeper.Service) portssvc.SystemSvcFacade {
	return &systemService{time: time}
}

var _ portssvc.SystemSvcFacade = (*systemService)(nil)

// ProcessDay forwards the business day by one.
func (s *systemService) ProcessDay(ctx context.Context, actor domain.Actor) (time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	day := s.time.AdvanceDay()
	logger.Info("Business day forwarded",
		slog.String("day", day.Format("2006-01-02")),
		slog.String("actor_id", actor.ID))
	return day, nil
}
