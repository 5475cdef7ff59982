package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

// assetAdminHandler handles the organization-side asset requests.
type assetAdminHandler struct {
	adminService portssvc.AssetAdminSvcFacade
}

func newAssetAdminHandler(as portssvc.AssetAdminSvcFacade) *assetAdminHandler {
	return &assetAdminHandler{adminService: as}
}

// registerAssetAdminRoutes registers the organization asset routes.
func registerAssetAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AssetAdminSvcFacade) {
	h := newAssetAdminHandler(adminService)

	admin := rg.Group("/admin/asset")
	{
		admin.GET("/cio", h.findCashInOut)
		admin.POST("/cf", h.registerCashflow)
	}
}

// findCashInOut searches requests by currency, status set and event-day range.
func (h *assetAdminHandler) findCashInOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.FindCashInOutQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for findCashInOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query format: " + err.Error()})
		return
	}
	params, err := q.ToParams()
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.adminService.FindCashInOut(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCashInOutResponse(list))
}

// registerCashflow records a ledger entry directly.
func (h *assetAdminHandler) registerCashflow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RegisterCashflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerCashflow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	cf, err := h.adminService.RegisterCashflow(c.Request.Context(), actor, req.ToRegCashflow())
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Cashflow registered", slog.String("cashflow_id", cf.ID))
	c.JSON(http.StatusCreated, dto.ToCashflowResponse(*cf))
}
