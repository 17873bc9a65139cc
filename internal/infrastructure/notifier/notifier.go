package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// WebhookNotifier tells the payout approval service about new batches.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, logger *slog.Logger) *WebhookNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// NotifyBatchCreated posts in the background. Failures are only logged.
func (n *WebhookNotifier) NotifyBatchCreated(batch *domain.PayoutBatch) {
	payload := BatchPayload{
		BatchID:   batch.ID,
		Reference: batch.Reference,
		MemberID:  batch.MemberID,
		Category:  string(batch.Category),
		Period:    batch.Period,
		Gross:     batch.Gross.StringFixed(2),
		Tax:       batch.Tax.StringFixed(2),
		Platform:  batch.PlatformCharge.StringFixed(2),
		Net:       batch.Net.StringFixed(2),
		CreatedAt: batch.CreatedAt,
	}
	go func() {
		if err := n.send(context.Background(), payload); err != nil {
			n.logger.Error("payout callback failed", "batch_id", payload.BatchID, "error", err)
			return
		}
		n.logger.Info("payout callback sent", "batch_id", payload.BatchID, "reference", payload.Reference)
	}()
}

func (n *WebhookNotifier) send(ctx context.Context, payload BatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal callback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}
	return nil
}
