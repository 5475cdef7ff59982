package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

// assetHandler handles the customer-facing asset requests.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers the customer asset routes. The withdraw
// route is rate limited per client IP.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade, withdrawRate string) {
	h := newAssetHandler(assetService)

	rate, err := limiter.NewRateFromFormatted(withdrawRate)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	cio := rg.Group("/asset/cio")
	{
		cio.GET("/unprocessed", h.findUnprocessedCashOut)
		cio.POST("/withdraw", middleware.RateLimit(ipLimiter), h.withdraw)
		cio.POST("/:id/cancel", h.cancelCashOut)
	}
}

// findUnprocessedCashOut lists the caller's still-processable withdrawal
// requests.
func (h *assetHandler) findUnprocessedCashOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	list, err := h.assetService.FindUnprocessedCashOut(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCashInOutResponse(list))
}

// withdraw registers a withdrawal request for the caller's own account.
func (h *assetHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	id, err := h.assetService.Withdraw(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Withdrawal requested", slog.String("cash_in_out_id", id))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// cancelCashOut cancels one of the caller's own requests.
func (h *assetHandler) cancelCashOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	id := c.Param("id")

	cancelled, err := h.assetService.CancelCashOut(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Withdrawal request cancelled", slog.String("cash_in_out_id", id))
	c.JSON(http.StatusOK, dto.ToCashInOutResponse(*cancelled))
}
