package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewDefaultKafkaPublisher(cfg KafkaConfig) (*DefaultKafkaPublisher, error) {
	transport, err := cfg.transport()
	if err != nil {
		return nil, err
	}
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			Transport:    transport,
			RequiredAcks: kafka.RequireAll,
		},
		topic: cfg.Topic,
	}, nil
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return k.writer.WriteMessages(ctx, km...)
}

// PublishCommission keys events by member so one member's credits stay ordered.
func (k *DefaultKafkaPublisher) PublishCommission(ctx context.Context, event domain.CommissionEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal commission event: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Topic: k.topic,
		Key:   []byte(event.MemberID),
		Value: v,
		Time:  event.CreatedAt,
	})
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
