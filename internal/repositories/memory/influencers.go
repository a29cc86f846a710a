package memory

import (
	"context"
	"slices"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
)

type influencerRepo struct{ s *Store }

func (r influencerRepo) List(_ context.Context, _ repositories.InfluencerFilter) ([]models.Influencer, error) {
	defer r.s.read()()

	out := []models.Influencer{}
	for _, i := range r.s.influencers {
		if i.OwnerUserID == r.s.owner {
			out = append(out, i)
		}
	}
	return newestFirst(out, func(i models.Influencer) time.Time { return i.CreatedAt }), nil
}

func (r influencerRepo) get(id string) *models.Influencer {
	i := r.s.influencerByID(id)
	if i == nil || i.OwnerUserID != r.s.owner {
		return nil
	}
	return i
}

func (r influencerRepo) Get(_ context.Context, id string) (*models.Influencer, error) {
	defer r.s.read()()

	i := r.get(id)
	if i == nil {
		return nil, apperr.NotFound("influencer", id)
	}
	out := *i
	return &out, nil
}

func (r influencerRepo) Insert(_ context.Context, i *models.Influencer) error {
	defer r.s.write()()

	now := r.s.now()
	i.ID = newID()
	i.OwnerUserID = r.s.owner
	i.CreatedAt, i.UpdatedAt = now, now
	r.s.influencers = append(r.s.influencers, *i)
	return nil
}

func (r influencerRepo) Update(_ context.Context, id string, p models.InfluencerPatch) (*models.Influencer, error) {
	defer r.s.write()()

	i := r.get(id)
	if i == nil {
		return nil, apperr.NotFound("influencer", id)
	}
	p.Apply(i)
	i.UpdatedAt = r.s.now()
	out := *i
	return &out, nil
}

func (r influencerRepo) Delete(_ context.Context, id string) error {
	defer r.s.write()()

	if r.get(id) == nil {
		return apperr.NotFound("influencer", id)
	}
	r.s.influencers = slices.DeleteFunc(r.s.influencers, func(i models.Influencer) bool { return i.ID == id })
	r.s.cascade(func(_, influencerID string) bool { return influencerID == id })
	return nil
}
