package memory

import (
	"context"
	"slices"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
)

type assignmentRepo struct{ s *Store }

func (r assignmentRepo) List(_ context.Context, f repositories.AssignmentFilter) ([]models.CampaignInfluencerDetails, error) {
	defer r.s.read()()

	out := []models.CampaignInfluencerDetails{}
	for _, l := range r.s.links {
		if !matches(f.CampaignID, l.CampaignID) || !matches(f.InfluencerID, l.InfluencerID) {
			continue
		}
		d := models.CampaignInfluencerDetails{CampaignInfluencer: l}
		if c := r.s.campaignByID(l.CampaignID); c != nil && f.Expand.Has(repositories.ExpandCampaign) {
			d.Campaign = models.NewCampaignRef(c)
			d.Campaign.Status = c.Status
		}
		if i := r.s.influencerByID(l.InfluencerID); i != nil && f.Expand.Has(repositories.ExpandInfluencer) {
			followers, rate := i.Followers, i.EngagementRate
			d.Influencer = models.NewInfluencerRef(i)
			d.Influencer.Followers, d.Influencer.EngagementRate = &followers, &rate
		}
		out = append(out, d)
	}
	return newestFirst(out, func(d models.CampaignInfluencerDetails) time.Time { return d.CreatedAt }), nil
}

func (r assignmentRepo) Get(_ context.Context, id string) (*models.CampaignInfluencer, error) {
	defer r.s.read()()

	for _, l := range r.s.links {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, apperr.NotFound("assignment", id)
}

func (r assignmentRepo) Assign(_ context.Context, in models.AssignInput) (*models.CampaignInfluencer, bool, error) {
	defer r.s.write()()

	for _, l := range r.s.links {
		if l.CampaignID == in.CampaignID && l.InfluencerID == in.InfluencerID {
			return &l, false, nil
		}
	}

	now := r.s.now()
	l := models.CampaignInfluencer{
		ID:           newID(),
		CampaignID:   in.CampaignID,
		InfluencerID: in.InfluencerID,
		Role:         in.Role,
		AgreedFee:    in.AgreedFee,
		Status:       models.AssignmentStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.links = append(r.s.links, l)
	return &l, true, nil
}

func (r assignmentRepo) Delete(_ context.Context, id string) error {
	defer r.s.write()()

	n := len(r.s.links)
	r.s.links = slices.DeleteFunc(r.s.links, func(l models.CampaignInfluencer) bool { return l.ID == id })
	if len(r.s.links) == n {
		return apperr.NotFound("assignment", id)
	}
	return nil
}
