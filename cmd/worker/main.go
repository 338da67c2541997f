package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/retail-daya/retail-daya/internal/app"
	"github.com/retail-daya/retail-daya/internal/sales"
	"github.com/retail-daya/retail-daya/internal/warehouse"
	"github.com/retail-daya/retail-daya/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	source, err := warehouse.Open(ctx, warehouse.Config{
		URL:       cfg.WarehouseURL,
		AuthToken: cfg.WarehouseAuthToken,
	})
	if err != nil {
		logger.Error("open warehouse", slog.Any("error", err))
		os.Exit(1)
	}
	defer source.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	salesRepo := sales.NewRepository(source, logger)
	salesCache := sales.NewCache(redisClient, cfg.WarehouseCacheTTL)
	salesService := sales.NewService(salesRepo, salesCache, cfg.WarehouseQueryTimeout, logger)

	refreshJob := jobs.NewWarehouseRefreshJob(salesService, logger)

	scheduledRefresh, err := jobs.NewWarehouseRefreshTask(jobs.WarehouseRefreshPayload{Reason: "scheduled"})
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskWarehouseRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "@every " + cfg.RefreshInterval.String(), Task: scheduledRefresh, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
