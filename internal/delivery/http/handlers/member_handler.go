package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/member/response"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/compensation"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payout"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	compensationUc compensation.CompensationUsecase
	payoutUc       payout.PayoutUsecase
	logger         *slog.Logger
}

func NewMemberHandler(compensationUc compensation.CompensationUsecase, payoutUc payout.PayoutUsecase, logger *slog.Logger) *MemberHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberHandler{
		compensationUc: compensationUc,
		payoutUc:       payoutUc,
		logger:         logger,
	}
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.compensationUc.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mappers.ToMemberResponse(member))
}

func (h *MemberHandler) GetTransactions(c *gin.Context) {
	txs, err := h.compensationUc.GetTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"member_id":    c.Param("id"),
		"transactions": mappers.ToTransactionResponses(txs),
	})
}

func (h *MemberHandler) GetBatches(c *gin.Context) {
	batches, err := h.payoutUc.GetMemberBatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"member_id": c.Param("id"),
		"batches":   mappers.ToBatchResponses(batches),
	})
}

func (h *MemberHandler) writeError(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMemberNotFound), errors.Is(err, domain.ErrBatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMember):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrLockTimeout):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, response.ErrorResponse{Success: false, Error: err.Error()})
}
