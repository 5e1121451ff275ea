package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqServer struct{}

// Run starts the task consumer and a watcher that drains it on context
// cancellation. srv.Run returns nil once Shutdown completes.
func (a AsynqServer) Run(
	gCtx context.Context,
	g *errgroup.Group,
	srv *asynq.Server,
	mux *asynq.ServeMux,
) {
	g.Go(func() error {
		logger(gCtx).Info("asynq worker started")

		if err := srv.Run(mux); err != nil {
			logger(gCtx).Error("asynq worker error", slog.Any("error", err))
			return fmt.Errorf("asynq.Run: %w", err)
		}

		logger(gCtx).Info("asynq worker stopped")
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		logger(gCtx).Info("asynq worker is shutting down")
		srv.Shutdown()
		return nil
	})
}

type AsynqScheduler struct{}

func (a AsynqScheduler) Run(
	gCtx context.Context,
	g *errgroup.Group,
	scheduler *asynq.Scheduler,
) {
	g.Go(func() error {
		logger(gCtx).Info("asynq scheduler started")

		if err := scheduler.Run(); err != nil {
			logger(gCtx).Error("asynq scheduler error", slog.Any("error", err))
			return fmt.Errorf("scheduler.Run: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		scheduler.Shutdown()
		return nil
	})
}
