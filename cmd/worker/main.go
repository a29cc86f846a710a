package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/influencehub/backend/internal/bootstrap"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelOwners bounds concurrent reminder runs per tick.
const maxParallelOwners = 4

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open backends", zap.Error(err))
	}
	defer deps.Close()

	svc, err := bootstrap.NewServices(deps, cfg, log)
	if err != nil {
		log.Fatal("failed to build services", zap.Error(err))
	}

	log.Info("worker started",
		zap.Duration("interval", cfg.ReminderInterval),
		zap.Strings("owners", cfg.ReminderOwners),
	)

	reminderTicker := time.NewTicker(cfg.ReminderInterval)
	defer reminderTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	runReminders(ctx, svc.Reminders, cfg.ReminderOwners, log)
	for {
		select {
		case <-reminderTicker.C:
			runReminders(ctx, svc.Reminders, cfg.ReminderOwners, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runReminders(ctx context.Context, reminders *services.ReminderService, owners []string, log *zap.Logger) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelOwners)

	for _, owner := range owners {
		g.Go(func() error {
			res, err := reminders.Run(gctx, owner)
			if err != nil {
				log.Error("reminder run failed", zap.String("owner_id", owner), zap.Error(err))
				return nil
			}
			if res.Sent {
				log.Info("reminders sent",
					zap.String("owner_id", owner),
					zap.Int("due_submissions", res.DueSubmissions),
					zap.Int("due_payouts", res.DuePayouts),
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}
