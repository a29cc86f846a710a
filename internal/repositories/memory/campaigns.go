package memory

import (
	"context"
	"slices"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
)

type campaignRepo struct{ s *Store }

func (r campaignRepo) List(_ context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	defer r.s.read()()

	out := []models.Campaign{}
	for _, c := range r.s.campaigns {
		if c.OwnerUserID == r.s.owner && matches(f.Status, c.Status) {
			out = append(out, c)
		}
	}
	return newestFirst(out, func(c models.Campaign) time.Time { return c.CreatedAt }), nil
}

func (r campaignRepo) get(id string) *models.Campaign {
	c := r.s.campaignByID(id)
	if c == nil || c.OwnerUserID != r.s.owner {
		return nil
	}
	return c
}

func (r campaignRepo) Get(_ context.Context, id string) (*models.Campaign, error) {
	defer r.s.read()()

	c := r.get(id)
	if c == nil {
		return nil, apperr.NotFound("campaign", id)
	}
	out := *c
	return &out, nil
}

func (r campaignRepo) Insert(_ context.Context, c *models.Campaign) error {
	defer r.s.write()()

	now := r.s.now()
	c.ID = newID()
	c.OwnerUserID = r.s.owner
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.campaigns = append(r.s.campaigns, *c)
	return nil
}

func (r campaignRepo) Update(_ context.Context, id string, p models.CampaignPatch) (*models.Campaign, error) {
	defer r.s.write()()

	c := r.get(id)
	if c == nil {
		return nil, apperr.NotFound("campaign", id)
	}
	p.Apply(c)
	c.UpdatedAt = r.s.now()
	out := *c
	return &out, nil
}

func (r campaignRepo) Delete(_ context.Context, id string) error {
	defer r.s.write()()

	if r.get(id) == nil {
		return apperr.NotFound("campaign", id)
	}
	r.s.campaigns = slices.DeleteFunc(r.s.campaigns, func(c models.Campaign) bool { return c.ID == id })
	r.s.cascade(func(campaignID, _ string) bool { return campaignID == id })
	return nil
}
