// Package bootstrap opens the backends named in the config and builds the
// service graph shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/db"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/notify"
	"github.com/influencehub/backend/internal/repositories"
	"github.com/influencehub/backend/internal/repositories/memory"
	"github.com/influencehub/backend/internal/services"
	"github.com/influencehub/backend/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Store      repositories.Store
	Cache      cache.Cache
	Publisher  events.Publisher
	Subscriber events.Subscriber
	Notifier   services.Notifier

	Pool  *pgxpool.Pool
	Redis *redis.Client

	closers []func()
}

// Open connects to Postgres and Redis when the config asks for them and
// falls back to process-local implementations otherwise.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Deps, error) {
	d := &Deps{}

	if cfg.UsePostgres() {
		pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.PoolOptions{MaxConns: int32(cfg.DBMaxConns)}, log)
		if err != nil {
			return nil, err
		}
		d.Pool = pool
		d.closers = append(d.closers, pool.Close)

		if err := db.RunMigrations(ctx, pool, db.MigrationSource(cfg.MigrationsDir, migrations.FS), log); err != nil {
			d.Close()
			return nil, err
		}
		d.Store = repositories.NewPGStore(pool)
	} else {
		d.Store = memory.New(memory.WithOwner(cfg.LocalOwnerID))
	}

	if cfg.UseRedis() {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.Redis = rdb
		d.closers = append(d.closers, func() { _ = rdb.Close() })

		d.Cache = cache.NewRedis(rdb, cfg.CacheTTL)
		d.Publisher = events.NewRedisPublisher(rdb, log)
		d.Subscriber = events.NewRedisSubscriber(rdb, log)
	} else {
		bus := events.NewLocalBus()
		d.Cache = cache.NewMemory()
		d.Publisher = bus
		d.Subscriber = bus
	}

	d.Notifier = newNotifier(d, cfg, log)
	return d, nil
}

// newNotifier hands messages to the bridge when Redis is available, posts
// them directly when only a sink URL is set, and logs them otherwise.
func newNotifier(d *Deps, cfg *config.Config, log *zap.Logger) services.Notifier {
	switch {
	case d.Redis != nil:
		return notify.NewEventNotifier(d.Publisher)
	case cfg.NotifyURL != "":
		return notify.NewHTTPClient(cfg.NotifyURL, cfg.NotifyTimeout, log)
	default:
		return notify.NewLogNotifier(log)
	}
}

// Close releases connections in reverse order of opening.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

type Services struct {
	Coordinator *services.Coordinator
	Campaigns   *services.CampaignService
	Influencers *services.InfluencerService
	Submissions *services.SubmissionService
	Payouts     *services.PayoutService
	Profiles    *services.ProfileService
	Dashboard   *services.DashboardService
	Reminders   *services.ReminderService
}

func NewServices(d *Deps, cfg *config.Config, log *zap.Logger) (*Services, error) {
	if d.Store == nil || d.Cache == nil {
		return nil, fmt.Errorf("bootstrap: store and cache are required")
	}
	loc := dates.LoadLocation(cfg.DefaultTimezone, time.UTC)

	co := services.NewCoordinator(d.Cache, d.Publisher, log)
	profiles := services.NewProfileService(d.Store, co, loc, log)
	return &Services{
		Coordinator: co,
		Campaigns:   services.NewCampaignService(d.Store, co, log),
		Influencers: services.NewInfluencerService(d.Store, co, log),
		Submissions: services.NewSubmissionService(d.Store, co, d.Notifier, log),
		Payouts:     services.NewPayoutService(d.Store, co, log),
		Profiles:    profiles,
		Dashboard:   services.NewDashboardService(d.Store, profiles, co, log),
		Reminders:   services.NewReminderService(d.Store, profiles, co, d.Notifier, cfg.ReminderWindowDays, log),
	}, nil
}
