package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/db"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/notify"
	"go.uber.org/zap"
)

// Notify Bridge subscribes to notification events on Redis and forwards
// them to the push sink at NOTIFY_URL.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	if cfg.NotifyURL == "" {
		log.Fatal("NOTIFY_URL is required for the notify bridge")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)
	sink := notify.NewHTTPClient(cfg.NotifyURL, cfg.NotifyTimeout, log)

	log.Info("notify-bridge started", zap.String("sink", cfg.NotifyURL))

	err = subscriber.Subscribe(ctx, events.StreamNotify, func(event events.Event) {
		msg, ok := notify.MessageFromEvent(event)
		if !ok {
			log.Debug("skipping event", zap.String("type", event.Type))
			return
		}
		if err := sink.Notify(ctx, msg); err != nil {
			log.Warn("failed to forward notification", zap.String("owner_id", msg.OwnerID), zap.Error(err))
			return
		}
		log.Info("notification forwarded", zap.String("owner_id", msg.OwnerID), zap.String("title", msg.Title))
	})
	if err != nil {
		log.Fatal("failed to subscribe", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down notify-bridge")
	cancel()
}
