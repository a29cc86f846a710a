package services

import (
	"context"
	"strings"

	"github.com/influencehub/backend/internal/aggregate"
	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

type InfluencerService struct {
	influencers repositories.InfluencerRepository
	assignments repositories.AssignmentRepository
	submissions repositories.SubmissionRepository
	co          *Coordinator
	log         *zap.Logger
}

func NewInfluencerService(store repositories.Store, co *Coordinator, log *zap.Logger) *InfluencerService {
	return &InfluencerService{
		influencers: store.Influencers(),
		assignments: store.Assignments(),
		submissions: store.Submissions(),
		co:          co,
		log:         log,
	}
}

type InfluencerInput struct {
	Name           string  `json:"name"`
	Platform       string  `json:"platform"`
	Handle         string  `json:"handle"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	Email          *string `json:"email,omitempty"`
}

// Negative followers are accepted as-is.
func (in InfluencerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if !models.IsValidPlatform(in.Platform) {
		return apperr.Validation("platform", "must be instagram, tiktok, youtube or other")
	}
	if models.NormalizeHandle(in.Handle) == "" {
		return apperr.Validation("handle", "is required")
	}
	return nil
}

func (s *InfluencerService) owned(ctx context.Context, owner, id string) (*models.Influencer, error) {
	i, err := s.influencers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.OwnerUserID != owner {
		return nil, apperr.NotFound("influencer", id)
	}
	return i, nil
}

func (s *InfluencerService) List(ctx context.Context, owner string) ([]models.Influencer, error) {
	return cached(ctx, s.co, cache.For(owner).Influencers(), func(ctx context.Context) ([]models.Influencer, error) {
		return s.influencers.List(ctx, repositories.InfluencerFilter{OwnerUserID: &owner})
	})
}

func (s *InfluencerService) Get(ctx context.Context, owner, id string) (*models.Influencer, error) {
	return cached(ctx, s.co, cache.For(owner).Influencer(id), func(ctx context.Context) (*models.Influencer, error) {
		return s.owned(ctx, owner, id)
	})
}

func (s *InfluencerService) Create(ctx context.Context, owner string, in InfluencerInput) (*models.Influencer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	i := &models.Influencer{
		OwnerUserID:    owner,
		Name:           strings.TrimSpace(in.Name),
		Platform:       in.Platform,
		Handle:         models.NormalizeHandle(in.Handle),
		Followers:      in.Followers,
		EngagementRate: in.EngagementRate,
		Email:          in.Email,
	}
	if err := s.influencers.Insert(ctx, i); err != nil {
		return nil, err
	}

	s.co.invalidate(ctx, owner, cache.For(owner).Influencers())
	return i, nil
}

func (s *InfluencerService) Update(ctx context.Context, owner, id string, p models.InfluencerPatch) (*models.Influencer, error) {
	if p.IsEmpty() {
		return nil, apperr.Validation("", "no fields to update")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	if p.Platform != nil && !models.IsValidPlatform(*p.Platform) {
		return nil, apperr.Validation("platform", "must be instagram, tiktok, youtube or other")
	}
	if p.Handle != nil {
		h := models.NormalizeHandle(*p.Handle)
		if h == "" {
			return nil, apperr.Validation("handle", "must not be empty")
		}
		p.Handle = &h
	}
	if _, err := s.owned(ctx, owner, id); err != nil {
		return nil, err
	}

	i, err := s.influencers.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner, keys.Influencers(), keys.Influencer(id))
	return i, nil
}

func (s *InfluencerService) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}
	if err := s.influencers.Delete(ctx, id); err != nil {
		return err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner,
		keys.Influencers(),
		keys.Influencer(id),
		keys.CampaignDetails(""),
		keys.Submissions(),
		keys.SubmissionDetails(""),
		keys.Payouts(),
		keys.Dashboard(),
		keys.Analytics(),
	)
	return nil
}

// Campaigns lists the influencer's campaign links with the campaign attached.
func (s *InfluencerService) Campaigns(ctx context.Context, owner, id string) ([]models.InfluencerCampaignLink, error) {
	return cached(ctx, s.co, cache.For(owner).InfluencerCampaigns(id), func(ctx context.Context) ([]models.InfluencerCampaignLink, error) {
		if _, err := s.owned(ctx, owner, id); err != nil {
			return nil, err
		}
		links, err := s.assignments.List(ctx, repositories.AssignmentFilter{InfluencerID: &id, Expand: repositories.ExpandCampaign})
		if err != nil {
			return nil, err
		}
		out := make([]models.InfluencerCampaignLink, 0, len(links))
		for _, l := range links {
			out = append(out, models.InfluencerCampaignLink{
				ID:        l.ID,
				Status:    l.Status,
				Role:      l.Role,
				AgreedFee: l.AgreedFee,
				Campaign:  l.Campaign,
			})
		}
		return out, nil
	})
}

func (s *InfluencerService) Performance(ctx context.Context, owner, id string) (models.PerformanceSummary, error) {
	return cached(ctx, s.co, cache.For(owner).InfluencerPerformance(id), func(ctx context.Context) (models.PerformanceSummary, error) {
		if _, err := s.owned(ctx, owner, id); err != nil {
			return models.PerformanceSummary{}, err
		}
		subs, err := s.submissions.List(ctx, repositories.SubmissionFilter{InfluencerID: &id})
		if err != nil {
			return models.PerformanceSummary{}, err
		}
		return aggregate.InfluencerPerformance(subs), nil
	})
}
