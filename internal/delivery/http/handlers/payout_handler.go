package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payout"
	"github.com/gin-gonic/gin"
)

// PayoutHandler lets operators settle batches and run a sweep out of schedule.
type PayoutHandler struct {
	payoutUc payout.PayoutUsecase
	logger   *slog.Logger
}

func NewPayoutHandler(payoutUc payout.PayoutUsecase, logger *slog.Logger) *PayoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayoutHandler{payoutUc: payoutUc, logger: logger}
}

func (h *PayoutHandler) MarkBatchPaid(c *gin.Context) {
	batch, err := h.payoutUc.MarkBatchPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, mappers.ToBatchResponse(batch))
}

func (h *PayoutHandler) RunSweep(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("sweep") {
	case "weekly":
		results, err := h.payoutUc.RunWeeklyMatchingSweep(ctx)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	case "monthly":
		result, err := h.payoutUc.RunMonthlySDRSweep(ctx)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": []any{result}})
	case "reward":
		result, err := h.payoutUc.RunRewardSweep(ctx)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": []any{result}})
	default:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown sweep"})
	}
}
