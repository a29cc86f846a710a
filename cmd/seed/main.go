package main

import (
	"context"
	"flag"
	"time"

	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/db"
	"github.com/influencehub/backend/internal/repositories"
	"github.com/influencehub/backend/internal/seed"
	"github.com/influencehub/backend/migrations"
	"go.uber.org/zap"
)

// Seed loads the demo dataset for one owner into Postgres. Owners that
// already have campaigns are left alone.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	owner := flag.String("owner", cfg.LocalOwnerID, "owner identity to seed")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.PoolOptions{MaxConns: 2}, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, db.MigrationSource(cfg.MigrationsDir, migrations.FS), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	store := repositories.NewPGStore(pool)
	loaded, err := store.LoadFixture(ctx, seed.Build(*owner, time.Now().UTC()))
	if err != nil {
		log.Fatal("failed to load fixture", zap.Error(err))
	}
	if !loaded {
		log.Info("owner already has data, nothing to do", zap.String("owner_id", *owner))
		return
	}
	log.Info("fixture loaded", zap.String("owner_id", *owner))
}
