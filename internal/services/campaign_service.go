package services

import (
	"context"
	"strings"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaigns   repositories.CampaignRepository
	influencers repositories.InfluencerRepository
	assignments repositories.AssignmentRepository
	submissions repositories.SubmissionRepository
	co          *Coordinator
	log         *zap.Logger
}

func NewCampaignService(store repositories.Store, co *Coordinator, log *zap.Logger) *CampaignService {
	return &CampaignService{
		campaigns:   store.Campaigns(),
		influencers: store.Influencers(),
		assignments: store.Assignments(),
		submissions: store.Submissions(),
		co:          co,
		log:         log,
	}
}

// CampaignInput is the full set of fields for a new campaign.
type CampaignInput struct {
	BrandName    string  `json:"brand_name"`
	CampaignName string  `json:"campaign_name"`
	Description  *string `json:"description,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Budget       float64 `json:"budget"`
	Status       string  `json:"status,omitempty"`
}

func validateDate(field, value string) error {
	if _, err := dates.Parse(value, nil); err != nil {
		return apperr.Validation(field, "must be a YYYY-MM-DD date")
	}
	return nil
}

// End before start and negative budgets are accepted as-is.
func (in CampaignInput) validate() error {
	if strings.TrimSpace(in.BrandName) == "" {
		return apperr.Validation("brand_name", "is required")
	}
	if strings.TrimSpace(in.CampaignName) == "" {
		return apperr.Validation("campaign_name", "is required")
	}
	if err := validateDate("start_date", in.StartDate); err != nil {
		return err
	}
	if err := validateDate("end_date", in.EndDate); err != nil {
		return err
	}
	if in.Status != "" && !models.IsValidCampaignStatus(in.Status) {
		return apperr.Validation("status", "must be draft, active or completed")
	}
	return nil
}

func validateCampaignPatch(p models.CampaignPatch) error {
	if p.IsEmpty() {
		return apperr.Validation("", "no fields to update")
	}
	if p.BrandName != nil && strings.TrimSpace(*p.BrandName) == "" {
		return apperr.Validation("brand_name", "must not be empty")
	}
	if p.CampaignName != nil && strings.TrimSpace(*p.CampaignName) == "" {
		return apperr.Validation("campaign_name", "must not be empty")
	}
	if p.StartDate != nil {
		if err := validateDate("start_date", *p.StartDate); err != nil {
			return err
		}
	}
	if p.EndDate != nil {
		if err := validateDate("end_date", *p.EndDate); err != nil {
			return err
		}
	}
	if p.Status != nil && !models.IsValidCampaignStatus(*p.Status) {
		return apperr.Validation("status", "must be draft, active or completed")
	}
	return nil
}

// owned loads a campaign and hides ones that belong to someone else.
func (s *CampaignService) owned(ctx context.Context, owner, id string) (*models.Campaign, error) {
	c, err := s.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != owner {
		return nil, apperr.NotFound("campaign", id)
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, owner, status string) ([]models.Campaign, error) {
	if status != "" && !models.IsValidCampaignStatus(status) {
		return nil, apperr.Validation("status", "unknown campaign status")
	}
	return cached(ctx, s.co, cache.For(owner).CampaignList(status), func(ctx context.Context) ([]models.Campaign, error) {
		f := repositories.CampaignFilter{OwnerUserID: &owner}
		if status != "" {
			f.Status = &status
		}
		return s.campaigns.List(ctx, f)
	})
}

func (s *CampaignService) Get(ctx context.Context, owner, id string) (*models.Campaign, error) {
	return cached(ctx, s.co, cache.For(owner).Campaign(id), func(ctx context.Context) (*models.Campaign, error) {
		return s.owned(ctx, owner, id)
	})
}

func (s *CampaignService) Create(ctx context.Context, owner string, in CampaignInput) (*models.Campaign, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &models.Campaign{
		OwnerUserID:  owner,
		BrandName:    strings.TrimSpace(in.BrandName),
		CampaignName: strings.TrimSpace(in.CampaignName),
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Budget:       in.Budget,
		Status:       in.Status,
	}
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}

	if err := s.campaigns.Insert(ctx, c); err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner, keys.Campaigns(), keys.Dashboard())
	s.log.Info("campaign created", zap.String("campaign_id", c.ID), zap.String("owner_id", owner))
	return c, nil
}

func (s *CampaignService) Update(ctx context.Context, owner, id string, p models.CampaignPatch) (*models.Campaign, error) {
	if err := validateCampaignPatch(p); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, owner, id); err != nil {
		return nil, err
	}

	c, err := s.campaigns.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner, keys.Campaigns(), keys.Campaign(id))
	return c, nil
}

// Delete removes the campaign with its links, submissions and payouts.
func (s *CampaignService) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}
	affected, err := s.linkedInfluencers(ctx, id)
	if err != nil {
		return err
	}
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return err
	}

	keys := cache.For(owner)
	prefixes := []string{
		keys.Campaigns(),
		keys.CampaignDetails(""),
		keys.Submissions(),
		keys.SubmissionDetails(""),
		keys.Payouts(),
		keys.Dashboard(),
		keys.Analytics(),
	}
	for _, infID := range affected {
		prefixes = append(prefixes, keys.Influencer(infID))
	}
	s.co.invalidate(ctx, owner, prefixes...)
	s.log.Info("campaign deleted", zap.String("campaign_id", id), zap.String("owner_id", owner))
	return nil
}

// linkedInfluencers returns the influencers whose campaign list or
// performance depends on the campaign, in first-seen order.
func (s *CampaignService) linkedInfluencers(ctx context.Context, id string) ([]string, error) {
	links, err := s.assignments.List(ctx, repositories.AssignmentFilter{CampaignID: &id})
	if err != nil {
		return nil, err
	}
	subs, err := s.submissions.List(ctx, repositories.SubmissionFilter{CampaignID: &id})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	add := func(infID string) {
		if infID != "" && !seen[infID] {
			seen[infID] = true
			ids = append(ids, infID)
		}
	}
	for _, l := range links {
		add(l.InfluencerID)
	}
	for _, sub := range subs {
		add(sub.InfluencerID)
	}
	return ids, nil
}

func (s *CampaignService) ListInfluencers(ctx context.Context, owner, id string) ([]models.CampaignInfluencerDetails, error) {
	return cached(ctx, s.co, cache.For(owner).CampaignInfluencers(id), func(ctx context.Context) ([]models.CampaignInfluencerDetails, error) {
		if _, err := s.owned(ctx, owner, id); err != nil {
			return nil, err
		}
		return s.assignments.List(ctx, repositories.AssignmentFilter{CampaignID: &id, Expand: repositories.ExpandInfluencer})
	})
}

func (s *CampaignService) ListSubmissions(ctx context.Context, owner, id string) ([]models.SubmissionListItem, error) {
	return cached(ctx, s.co, cache.For(owner).CampaignSubmissions(id), func(ctx context.Context) ([]models.SubmissionListItem, error) {
		if _, err := s.owned(ctx, owner, id); err != nil {
			return nil, err
		}
		return s.submissions.List(ctx, repositories.SubmissionFilter{CampaignID: &id, Expand: repositories.ExpandInfluencer})
	})
}

// Assign links an influencer to a campaign. Repeating the call for the same
// pair returns the stored link unchanged with created=false.
func (s *CampaignService) Assign(ctx context.Context, owner string, in models.AssignInput) (*models.CampaignInfluencer, bool, error) {
	if in.CampaignID == "" {
		return nil, false, apperr.Validation("campaign_id", "is required")
	}
	if in.InfluencerID == "" {
		return nil, false, apperr.Validation("influencer_id", "is required")
	}
	if _, err := s.owned(ctx, owner, in.CampaignID); err != nil {
		return nil, false, err
	}
	inf, err := s.influencers.Get(ctx, in.InfluencerID)
	if err != nil {
		return nil, false, err
	}
	if inf.OwnerUserID != owner {
		return nil, false, apperr.NotFound("influencer", in.InfluencerID)
	}

	link, created, err := s.assignments.Assign(ctx, in)
	if err != nil {
		return nil, false, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner, keys.Campaign(in.CampaignID), keys.InfluencerCampaigns(in.InfluencerID))
	if created {
		s.co.publish(ctx, events.New(events.EventInfluencerAssigned, owner, map[string]any{
			"campaign_id":   link.CampaignID,
			"influencer_id": link.InfluencerID,
			"link_id":       link.ID,
		}))
	}
	return link, created, nil
}
