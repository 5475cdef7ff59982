package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

// jobHandler exposes the daily reconciliation jobs as HTTP triggers, in
// place of an external scheduler.
type jobHandler struct {
	adminService  portssvc.AssetAdminSvcFacade
	systemService portssvc.SystemSvcFacade
}

func newJobHandler(as portssvc.AssetAdminSvcFacade, ss portssvc.SystemSvcFacade) *jobHandler {
	return &jobHandler{adminService: as, systemService: ss}
}

// registerJobRoutes registers the daily job triggers.
func registerJobRoutes(rg *gin.RouterGroup, adminService portssvc.AssetAdminSvcFacade, systemService portssvc.SystemSvcFacade) {
	h := newJobHandler(adminService, systemService)

	daily := rg.Group("/system/job/daily")
	{
		daily.POST("/close-cash-out", h.closeCashOut)
		daily.POST("/realize-cashflow", h.realizeCashflow)
		daily.POST("/process-day", h.processDay)
	}
}

// closeCashOut runs the withdrawal-closing job. Per-item failures are
// reported in the result, never as a request failure.
func (h *jobHandler) closeCashOut(c *gin.Context) {
	result := h.adminService.CloseCashOut(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

// realizeCashflow runs the settlement-posting job.
func (h *jobHandler) realizeCashflow(c *gin.Context) {
	result := h.adminService.RealizeCashflow(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

// processDay forwards the business day by one.
func (h *jobHandler) processDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	day, err := h.systemService.ProcessDay(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day.Format("2006-01-02")})
}
