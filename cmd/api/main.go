package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/bootstrap"
	"github.com/influencehub/backend/internal/config"
	apphttp "github.com/influencehub/backend/internal/http"
	"github.com/influencehub/backend/internal/http/handlers"
	"go.uber.org/zap"
)

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

	// Handlers
	wsHub := handlers.NewWSHub(cfg, deps.Subscriber, log)
	h := apphttp.Handlers{
		Auth:       handlers.NewAuthHandler(cfg, log),
		User:       handlers.NewUserHandler(svc.Profiles, log),
		Campaign:   handlers.NewCampaignHandler(svc.Campaigns, log),
		Influencer: handlers.NewInfluencerHandler(svc.Influencers, log),
		Submission: handlers.NewSubmissionHandler(svc.Submissions, svc.Reminders, log),
		Payout:     handlers.NewPayoutHandler(svc.Payouts, log),
		Dashboard:  handlers.NewDashboardHandler(svc.Dashboard, log),
		Meta:       handlers.NewMetaHandler(),
		WS:         wsHub,
	}

	// Start WS hub
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to start ws hub", zap.Error(err))
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := apperr.HTTPStatus(err)
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, deps.Redis, h)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("store", cfg.StoreBackend),
		zap.String("cache", cfg.CacheBackend),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
