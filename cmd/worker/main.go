package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/cache"
	"github.com/fhuszti/videos-ms-go/internal/config"
	workerHandler "github.com/fhuszti/videos-ms-go/internal/handler/worker"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/task"
	videoSvc "github.com/fhuszti/videos-ms-go/internal/usecase/video"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	client := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	resetSvc := videoSvc.NewSessionResetter(cache.NewRedisSessionStore(client), cfg.UploadLockTTL)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeResetSession, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseResetSessionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ResetSessionHandler(ctx, p, resetSvc)
	})

	runWorker(ctx, mux, cfg, client)
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, client *redis.Client) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	done := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Warn(ctx, "⚠️  Worker shutdown timed out")
	}

	if err := client.Close(); err != nil {
		logger.Warnf(ctx, "Redis close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
