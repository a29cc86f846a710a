package memory

import (
	"context"
	"slices"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
)

type payoutRepo struct{ s *Store }

func (r payoutRepo) item(p models.Payout, expand repositories.Expand) models.PayoutListItem {
	return models.PayoutListItem{
		Payout:     p,
		Campaign:   r.s.campaignRef(p.CampaignID, expand),
		Influencer: r.s.influencerRef(p.InfluencerID, expand),
	}
}

// List orders by due_date ascending; YYYY-MM-DD compares lexically.
func (r payoutRepo) List(_ context.Context, f repositories.PayoutFilter) ([]models.PayoutListItem, error) {
	defer r.s.read()()

	out := []models.PayoutListItem{}
	for _, p := range r.s.payouts {
		if !matches(f.Status, p.Status) || !matches(f.CampaignID, p.CampaignID) ||
			!matches(f.InfluencerID, p.InfluencerID) || !r.s.ownedCampaign(f.OwnerUserID, p.CampaignID) {
			continue
		}
		out = append(out, r.item(p, f.Expand))
	}
	slices.SortStableFunc(out, func(a, b models.PayoutListItem) int {
		if a.DueDate != b.DueDate {
			if a.DueDate < b.DueDate {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r payoutRepo) find(id string) *models.Payout {
	for i := range r.s.payouts {
		if r.s.payouts[i].ID == id {
			return &r.s.payouts[i]
		}
	}
	return nil
}

func (r payoutRepo) Get(_ context.Context, id string, expand repositories.Expand) (*models.PayoutListItem, error) {
	defer r.s.read()()

	p := r.find(id)
	if p == nil {
		return nil, apperr.NotFound("payout", id)
	}
	item := r.item(*p, expand)
	return &item, nil
}

func (r payoutRepo) Insert(_ context.Context, p *models.Payout) error {
	defer r.s.write()()

	now := r.s.now()
	p.ID = newID()
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.payouts = append(r.s.payouts, *p)
	return nil
}

func (r payoutRepo) MarkPaid(_ context.Context, id string, at time.Time) (*models.Payout, error) {
	defer r.s.write()()

	p := r.find(id)
	if p == nil {
		return nil, apperr.NotFound("payout", id)
	}
	p.MarkPaid(at)
	out := *p
	return &out, nil
}

func (r payoutRepo) Delete(_ context.Context, id string) error {
	defer r.s.write()()

	n := len(r.s.payouts)
	r.s.payouts = slices.DeleteFunc(r.s.payouts, func(p models.Payout) bool { return p.ID == id })
	if len(r.s.payouts) == n {
		return apperr.NotFound("payout", id)
	}
	return nil
}
