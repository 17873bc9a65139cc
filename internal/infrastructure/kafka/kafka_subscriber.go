package publisher

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaSubscriber struct {
	cfg    KafkaConfig
	ctx    context.Context
	logger *slog.Logger
}

// NewDefaultKafkaSubscriber binds the subscription lifetime to ctx.
func NewDefaultKafkaSubscriber(ctx context.Context, cfg KafkaConfig, logger *slog.Logger) *DefaultKafkaSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultKafkaSubscriber{cfg: cfg, ctx: ctx, logger: logger}
}

func (k *DefaultKafkaSubscriber) Subscribe(topic, groupID string) (<-chan domain.Message, error) {
	dialer, err := k.cfg.dialer()
	if err != nil {
		return nil, err
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.cfg.Brokers,
		Topic:   topic,
		GroupID: groupID,
		Dialer:  dialer,
	})
	out := make(chan domain.Message)
	go func() {
		defer close(out)
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(k.ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					k.logger.Error("kafka read failed", "topic", topic, "error", err)
				}
				return
			}
			select {
			case out <- domain.Message{Key: m.Key, Value: m.Value}:
			case <-k.ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
