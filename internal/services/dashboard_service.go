package services

import (
	"context"
	"time"

	"github.com/influencehub/backend/internal/aggregate"
	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardService feeds store lists through the aggregation functions.
// Results are cached per owner and calendar day in the owner's time zone.
type DashboardService struct {
	submissions repositories.SubmissionRepository
	payouts     repositories.PayoutRepository
	profiles    *ProfileService
	co          *Coordinator
	log         *zap.Logger
}

func NewDashboardService(store repositories.Store, profiles *ProfileService, co *Coordinator, log *zap.Logger) *DashboardService {
	return &DashboardService{
		submissions: store.Submissions(),
		payouts:     store.Payouts(),
		profiles:    profiles,
		co:          co,
		log:         log,
	}
}

func (s *DashboardService) localNow(ctx context.Context, owner string) time.Time {
	return s.co.Now().In(s.profiles.Location(ctx, owner))
}

func (s *DashboardService) Dashboard(ctx context.Context, owner string) (models.Dashboard, error) {
	now := s.localNow(ctx, owner)
	key := cache.For(owner).DashboardOn(dates.Format(now))

	return cached(ctx, s.co, key, func(ctx context.Context) (models.Dashboard, error) {
		var (
			subs    []models.SubmissionListItem
			payouts []models.PayoutListItem
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			subs, err = s.submissions.List(gctx, repositories.SubmissionFilter{OwnerUserID: &owner, Expand: repositories.ExpandAll})
			return err
		})
		g.Go(func() error {
			var err error
			payouts, err = s.payouts.List(gctx, repositories.PayoutFilter{OwnerUserID: &owner, Expand: repositories.ExpandAll})
			return err
		})
		if err := g.Wait(); err != nil {
			return models.Dashboard{}, err
		}
		return aggregate.BuildDashboard(subs, payouts, now), nil
	})
}

func (s *DashboardService) Analytics(ctx context.Context, owner string, r models.AnalyticsRange) (models.Analytics, error) {
	if !models.IsValidAnalyticsRange(r) {
		return models.Analytics{}, apperr.Validation("range", "must be 7 or 30")
	}
	now := s.localNow(ctx, owner)
	key := cache.For(owner).AnalyticsRange(int(r), dates.Format(now))

	return cached(ctx, s.co, key, func(ctx context.Context) (models.Analytics, error) {
		subs, err := s.submissions.List(ctx, repositories.SubmissionFilter{OwnerUserID: &owner, Expand: repositories.ExpandInfluencer})
		if err != nil {
			return models.Analytics{}, err
		}
		return aggregate.BuildAnalytics(subs, r, now), nil
	})
}
