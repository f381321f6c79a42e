package testutil

import (
	"context"

	workerHandler "github.com/fhuszti/videos-ms-go/internal/handler/worker"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/task"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing session reset tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(redisAddr string, resetter port.SessionResetter) func() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeResetSession, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseResetSessionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ResetSessionHandler(ctx, p, resetter)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
