package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/app/background"
	"github.com/LavaJover/shvark-commission-service/internal/app/setup"
	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/mq"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	appLogger := logger.Setup(cfg.LogConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	uc, err := setup.InitializeUseCases(ctx, deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	// purchase-events consumer
	if deps.PurchaseSubscriber != nil {
		msgs, err := deps.PurchaseSubscriber.Subscribe(cfg.KafkaService.PurchaseTopic, cfg.KafkaService.GroupID)
		if err != nil {
			log.Fatalf("failed to subscribe to %s: %v", cfg.KafkaService.PurchaseTopic, err)
		}
		purchaseHandler := mq.NewPurchaseHandler(uc.CompensationUsecase, appLogger)
		go purchaseHandler.Run(ctx, msgs)
	}

	// payout sweeps
	if cfg.Payout.SchedulerEnabled {
		tasks := background.NewBackgroundTasks(uc.PayoutUsecase, background.Intervals{
			Weekly:  cfg.Payout.WeeklyInterval,
			Monthly: cfg.Payout.MonthlyInterval,
			Reward:  cfg.Payout.RewardInterval,
		}, appLogger)
		tasks.StartAll(ctx)
	}

	router := handlers.NewRouter(
		handlers.NewMemberHandler(uc.CompensationUsecase, uc.PayoutUsecase, appLogger),
		handlers.NewPayoutHandler(uc.PayoutUsecase, appLogger),
		appLogger,
		cfg.Env != "local",
	)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info("http server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http server shutdown failed", "error", err)
	}
}
