package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/compensation"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

// PurchaseHandler feeds purchase-events into the compensation engine. Messages are
// handled one at a time in topic order; the engine entry points are idempotent, so
// redelivered messages are harmless.
type PurchaseHandler struct {
	uc         compensation.CompensationUsecase
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
}

func NewPurchaseHandler(uc compensation.CompensationUsecase, logger *slog.Logger) *PurchaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurchaseHandler{
		uc:         uc,
		logger:     logger,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

func (h *PurchaseHandler) Run(ctx context.Context, msgs <-chan domain.Message) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("purchase consumer stopped")
			return
		case msg, ok := <-msgs:
			if !ok {
				h.logger.Warn("purchase event stream closed")
				return
			}
			if err := h.handleWithRetry(ctx, msg); err != nil {
				h.logger.Error("purchase event dropped", "key", string(msg.Key), "error", err)
			}
		}
	}
}

func (h *PurchaseHandler) handleWithRetry(ctx context.Context, msg domain.Message) error {
	var err error
	for attempt := 1; attempt <= h.maxRetries; attempt++ {
		err = h.Handle(ctx, msg)
		if err == nil || isPermanent(err) {
			return err
		}
		h.logger.Warn("purchase event failed, retrying", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * h.backoff):
		}
	}
	return err
}

func (h *PurchaseHandler) Handle(ctx context.Context, msg domain.Message) error {
	var event PurchaseEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("decode purchase event: %w", errMalformed)
	}
	h.logger.Debug("purchase event received", "event_id", event.EventID, "type", event.Type, "member_id", event.MemberID)

	switch event.Type {
	case EventPurchase:
		_, err := h.uc.ApplyVolume(ctx, &compensationdto.ApplyVolumeInput{
			EventID:  event.EventID,
			MemberID: event.MemberID,
			Delta:    event.PV,
		})
		return err

	case EventRepurchase:
		candidates, err := h.uc.DistributeRepurchase(ctx, &compensationdto.RepurchaseInput{
			TransactionID: event.EventID,
			PurchaserID:   event.MemberID,
			Value:         event.Value,
		})
		if err != nil {
			return err
		}
		return h.uc.PayMentorOverrides(ctx, candidates)

	case EventPower:
		tier, err := domain.ParseTier(event.Tier)
		if err != nil {
			return err
		}
		return h.uc.AddTierPower(ctx, &compensationdto.AddTierPowerInput{
			EventID:  event.EventID,
			MemberID: event.MemberID,
			Tier:     tier,
			Side:     domain.Position(event.Side),
			Count:    event.Count,
			Scope:    compensationdto.PowerScope(event.Scope),
		})

	case EventPlacement:
		_, err := h.uc.PlaceMember(ctx, &compensationdto.PlaceMemberInput{
			MemberID:        event.MemberID,
			ParentID:        event.ParentID,
			Side:            domain.Position(event.Side),
			SponsorID:       event.SponsorID,
			Percentage:      event.Percentage,
			LoanAmount:      event.LoanAmount,
			LoanPercentage:  event.LoanPercentage,
			SecurityDeposit: event.SecurityDeposit,
			SDRPercentage:   event.SDRPercentage,
		})
		if errors.Is(err, domain.ErrMemberExists) {
			return nil
		}
		return err

	case EventUpgrade:
		_, err := h.uc.CreditIncome(ctx, &compensationdto.CreditInput{
			EventID:  event.EventID,
			MemberID: event.MemberID,
			Category: domain.CategoryUpgrade,
			Amount:   event.Value,
			SourceID: event.EventID,
			Note:     "upgrade fund allotment",
		})
		return err
	}
	return fmt.Errorf("event type %q: %w", event.Type, errMalformed)
}

var errMalformed = errors.New("malformed purchase event")

// isPermanent reports errors a redelivery cannot fix.
func isPermanent(err error) bool {
	for _, target := range []error{
		errMalformed,
		domain.ErrInvalidAmount,
		domain.ErrInvalidMember,
		domain.ErrInvalidTier,
		domain.ErrInvalidSide,
		domain.ErrInvalidScope,
		domain.ErrInvalidCategory,
		domain.ErrSlotOccupied,
		domain.ErrSponsorNotInTree,
		domain.ErrMemberNotFound,
		domain.ErrCycleDetected,
		domain.ErrPartialCascade,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
