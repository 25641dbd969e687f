// Package client assembles the sync client: it runs an initial sync cycle,
// keeps the background sync job ticking and shuts everything down cleanly on
// SIGINT/SIGTERM.
package client

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/service"
)

type App struct {
	services *service.ClientServices
	workers  config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, workers config.ClientWorkers, log *logger.Logger) *App {
	return &App{
		services: services,
		workers:  workers,
		logger:   log,
	}
}

// Run performs one sync cycle up front, then hands off to the periodic job
// until the process receives SIGINT or SIGTERM. A failed initial sync is
// logged but not fatal: the device may simply be offline, and the job
// retries on its next tick.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.services.SyncService.Sync(ctx); err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			a.logger.Warn().Err(err).Msg("no usable token yet, syncing will start once one appears")
		} else {
			a.logger.Warn().Err(err).Msg("initial sync failed, will retry on schedule")
		}
	}

	a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	a.logger.Info().
		Dur("interval", a.workers.SyncInterval).
		Msg("background sync running")

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")
	return nil
}
