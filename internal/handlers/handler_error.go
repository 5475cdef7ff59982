// Package handlers wires the HTTP surface onto the use-case facades.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string       `json:"error"`
	Warns []WarnDetail `json:"warns,omitempty"`
}

// WarnDetail is one validation message in an error response.
type WarnDetail struct {
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message"`
	Args    []string `json:"args,omitempty"`
}

// respondError maps service errors onto HTTP responses: not-found misses to
// 404, validation failures with their warn details to 400, anything else to
// an opaque 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var nfe *apperrors.NotFoundError
	if errors.As(err, &nfe) {
		logger.Warn("Resource not found", slog.String("kind", nfe.Kind), slog.String("id", nfe.ID))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		warns := make([]WarnDetail, len(ve.Warns))
		for i, w := range ve.Warns {
			warns[i] = WarnDetail{Field: w.Field, Message: w.Message, Args: w.Args}
		}
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Warns: warns})
		return
	}

	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	logger.Error("Request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
