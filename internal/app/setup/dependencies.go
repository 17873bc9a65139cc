package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	publisher "github.com/LavaJover/shvark-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config              *config.CommissionConfig
	DB                  *gorm.DB
	Logger              *slog.Logger
	Redis               *redis.Client
	Locker              domain.ChainLocker
	CommissionPublisher *publisher.DefaultKafkaPublisher
	PurchaseSubscriber  *publisher.DefaultKafkaSubscriber
	Notifier            domain.BatchNotifier
	Metrics             *metrics.CompensationMetrics
	Repositories        *Repositories
}

type Repositories struct {
	MemberRepo   domain.MemberRepository
	EventRepo    domain.EventRepository
	PayoutRepo   domain.PayoutRepository
	PlanRepo     domain.PlanRepository
	StatusLogger domain.StatusLogger
}

func InitializeDependencies(ctx context.Context, cfg *config.CommissionConfig, log *slog.Logger) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.CommissionDB.MigrationsPath); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	deps := &Dependencies{
		Config:  cfg,
		DB:      db,
		Logger:  log,
		Metrics: metrics.NewCompensationMetrics(),
		Repositories: &Repositories{
			MemberRepo:   repository.NewDefaultMemberRepository(db),
			EventRepo:    repository.NewDefaultEventRepository(db),
			PayoutRepo:   repository.NewDefaultPayoutRepository(db),
			PlanRepo:     repository.NewDefaultPlanRepository(db),
			StatusLogger: logger.NewPGStatusLogger(db),
		},
	}

	if err := initLocker(ctx, deps); err != nil {
		return nil, fmt.Errorf("chain lock: %w", err)
	}

	if cfg.KafkaService.Host != "" {
		pub, err := publisher.NewDefaultKafkaPublisher(kafkaConfig(cfg, cfg.KafkaService.CommissionTopic))
		if err != nil {
			return nil, fmt.Errorf("commission publisher: %w", err)
		}
		deps.CommissionPublisher = pub
		deps.PurchaseSubscriber = publisher.NewDefaultKafkaSubscriber(ctx, kafkaConfig(cfg, cfg.KafkaService.PurchaseTopic), log)
	} else {
		log.Warn("kafka is not configured, purchase events are not consumed")
	}

	if cfg.Payout.NotifierURL != "" {
		deps.Notifier = notifier.NewWebhookNotifier(cfg.Payout.NotifierURL, cfg.Payout.NotifierTimeout, log)
	}
	return deps, nil
}

func initLocker(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config.Redis
	if cfg.Addr == "" {
		deps.Logger.Warn("redis is not configured, using in-process chain lock")
		deps.Locker = lock.NewLocalLocker(cfg.LockTimeout)
		return nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return err
	}
	deps.Redis = client
	deps.Locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockTimeout, deps.Logger)
	return nil
}

func kafkaConfig(cfg *config.CommissionConfig, topic string) publisher.KafkaConfig {
	return publisher.KafkaConfig{
		Brokers:    []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		Topic:      topic,
		GroupID:    cfg.KafkaService.GroupID,
		Username:   cfg.KafkaService.Username,
		Password:   cfg.KafkaService.Password,
		Mechanism:  cfg.KafkaService.Mechanism,
		TLSEnabled: cfg.KafkaService.TLSEnabled,
	}
}

// Close releases the connections opened by InitializeDependencies.
func (d *Dependencies) Close() {
	if d.CommissionPublisher != nil {
		if err := d.CommissionPublisher.Close(); err != nil {
			d.Logger.Error("failed to close commission publisher", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("failed to close redis client", "error", err)
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			d.Logger.Error("failed to close database", "error", err)
		}
	}
}
