package memory

import (
	"context"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
)

type profileRepo struct{ s *Store }

func (r profileRepo) Get(_ context.Context, id string) (*models.Profile, error) {
	defer r.s.read()()

	for _, p := range r.s.profiles {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperr.NotFound("profile", id)
}

func (r profileRepo) Upsert(_ context.Context, in models.ProfileInput) (*models.Profile, error) {
	defer r.s.write()()

	now := r.s.now()
	for i := range r.s.profiles {
		if p := &r.s.profiles[i]; p.ID == in.ID {
			in.Merge(p)
			p.UpdatedAt = now
			out := *p
			return &out, nil
		}
	}

	p := models.Profile{ID: in.ID, FullName: in.FullName, Timezone: in.Timezone, CreatedAt: now, UpdatedAt: now}
	r.s.profiles = append(r.s.profiles, p)
	return &p, nil
}
