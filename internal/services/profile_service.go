package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

type ProfileService struct {
	profiles repositories.ProfileRepository
	co       *Coordinator
	fallback *time.Location
	log      *zap.Logger
}

func NewProfileService(store repositories.Store, co *Coordinator, fallback *time.Location, log *zap.Logger) *ProfileService {
	if fallback == nil {
		fallback = time.UTC
	}
	return &ProfileService{profiles: store.Profiles(), co: co, fallback: fallback, log: log}
}

func (s *ProfileService) Get(ctx context.Context, owner string) (*models.Profile, error) {
	return cached(ctx, s.co, cache.For(owner).Profile(), func(ctx context.Context) (*models.Profile, error) {
		return s.profiles.Get(ctx, owner)
	})
}

// Upsert creates the owner's profile or merges the non-nil fields into it.
func (s *ProfileService) Upsert(ctx context.Context, owner string, in models.ProfileInput) (*models.Profile, error) {
	in.ID = owner
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if _, err := time.LoadLocation(tz); tz == "" || err != nil {
			return nil, apperr.Validation("timezone", "must be an IANA time zone name")
		}
		in.Timezone = &tz
	}

	p, err := s.profiles.Upsert(ctx, in)
	if err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner, keys.Profile(), keys.Dashboard(), keys.Analytics())
	return p, nil
}

// Location is the owner's calendar for day boundaries. A missing profile or
// unknown zone falls back to the service default.
func (s *ProfileService) Location(ctx context.Context, owner string) *time.Location {
	p, err := s.Get(ctx, owner)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.log.Warn("profile lookup failed", zap.String("owner_id", owner), zap.Error(err))
		}
		return s.fallback
	}
	if p.Timezone == nil {
		return s.fallback
	}
	return dates.LoadLocation(*p.Timezone, s.fallback)
}
