package services

import (
	"context"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

type PayoutService struct {
	payouts   repositories.PayoutRepository
	campaigns repositories.CampaignRepository
	co        *Coordinator
	log       *zap.Logger
}

func NewPayoutService(store repositories.Store, co *Coordinator, log *zap.Logger) *PayoutService {
	return &PayoutService{
		payouts:   store.Payouts(),
		campaigns: store.Campaigns(),
		co:        co,
		log:       log,
	}
}

// List returns the owner's payouts ordered by due date.
func (s *PayoutService) List(ctx context.Context, owner string) ([]models.PayoutListItem, error) {
	return cached(ctx, s.co, cache.For(owner).Payouts(), func(ctx context.Context) ([]models.PayoutListItem, error) {
		return s.payouts.List(ctx, repositories.PayoutFilter{OwnerUserID: &owner, Expand: repositories.ExpandAll})
	})
}

// MarkPaid settles a payout. Cached payout lists show it as paid until the
// write resolves and are restored byte for byte if it fails. Settling an
// already-paid payout returns it unchanged.
func (s *PayoutService) MarkPaid(ctx context.Context, owner, id string) (*models.Payout, error) {
	item, err := s.payouts.Get(ctx, id, repositories.ExpandNone)
	if err != nil {
		return nil, err
	}
	if c, err := s.campaigns.Get(ctx, item.CampaignID); err == nil && c.OwnerUserID != owner {
		return nil, apperr.NotFound("payout", id)
	}
	if item.Status == models.PayoutStatusPaid {
		return &item.Payout, nil
	}

	keys := cache.For(owner)
	at := s.co.Now()

	var paid *models.Payout
	err = s.co.optimistic(ctx, s.co.keysUnder(ctx, keys.Payouts()), func(_ string, raw []byte) ([]byte, bool) {
		return patchJSON(raw, func(list *[]models.PayoutListItem) bool {
			changed := false
			for i := range *list {
				if (*list)[i].ID == id {
					changed = (*list)[i].MarkPaid(at) || changed
				}
			}
			return changed
		})
	}, func(ctx context.Context) error {
		var err error
		paid, err = s.payouts.MarkPaid(ctx, id, at)
		return err
	})

	s.co.invalidate(ctx, owner, keys.Payouts(), keys.Dashboard())
	if err != nil {
		s.log.Warn("payout settlement failed", zap.String("payout_id", id), zap.Error(err))
		return nil, err
	}

	s.co.publish(ctx, events.New(events.EventPayoutSettled, owner, map[string]any{
		"payout_id": id,
		"amount":    paid.Amount,
		"currency":  paid.Currency,
	}))
	s.log.Info("payout settled", zap.String("payout_id", id), zap.Float64("amount", paid.Amount))
	return paid, nil
}
