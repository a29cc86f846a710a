package repositories

import (
	"context"
	"time"

	"github.com/influencehub/backend/internal/models"
)

// Expand selects which foreign rows a list/get call attaches. A missing
// foreign row yields a nil relation, never an error.
type Expand uint8

const (
	ExpandCampaign Expand = 1 << iota
	ExpandInfluencer

	ExpandNone Expand = 0
	ExpandAll         = ExpandCampaign | ExpandInfluencer
)

func (e Expand) Has(flag Expand) bool {
	return e&flag != 0
}

type CampaignFilter struct {
	OwnerUserID *string
	Status      *string
}

type InfluencerFilter struct {
	OwnerUserID *string
}

type AssignmentFilter struct {
	CampaignID   *string
	InfluencerID *string
	Expand       Expand
}

type SubmissionFilter struct {
	OwnerUserID  *string // scoped through the owning campaign
	Status       *string
	CampaignID   *string
	InfluencerID *string
	Expand       Expand
}

type PayoutFilter struct {
	OwnerUserID  *string
	Status       *string
	CampaignID   *string
	InfluencerID *string
	Expand       Expand
}

// Lists are ordered by created_at descending unless noted otherwise.

type CampaignRepository interface {
	List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error)
	Get(ctx context.Context, id string) (*models.Campaign, error)
	Insert(ctx context.Context, c *models.Campaign) error
	Update(ctx context.Context, id string, p models.CampaignPatch) (*models.Campaign, error)
	// Delete cascades to links, submissions and payouts of the campaign.
	Delete(ctx context.Context, id string) error
}

type InfluencerRepository interface {
	List(ctx context.Context, f InfluencerFilter) ([]models.Influencer, error)
	Get(ctx context.Context, id string) (*models.Influencer, error)
	Insert(ctx context.Context, i *models.Influencer) error
	Update(ctx context.Context, id string, p models.InfluencerPatch) (*models.Influencer, error)
	// Delete cascades to links, submissions and payouts of the influencer.
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	List(ctx context.Context, f AssignmentFilter) ([]models.CampaignInfluencerDetails, error)
	Get(ctx context.Context, id string) (*models.CampaignInfluencer, error)
	// Assign is idempotent per (campaign, influencer): an existing link is
	// returned unchanged with created=false.
	Assign(ctx context.Context, in models.AssignInput) (link *models.CampaignInfluencer, created bool, err error)
	Delete(ctx context.Context, id string) error
}

type SubmissionRepository interface {
	List(ctx context.Context, f SubmissionFilter) ([]models.SubmissionListItem, error)
	Get(ctx context.Context, id string, expand Expand) (*models.SubmissionListItem, error)
	Insert(ctx context.Context, s *models.Submission) error
	Review(ctx context.Context, id string, u models.ReviewUpdate) (*models.Submission, error)
	Delete(ctx context.Context, id string) error
}

type PayoutRepository interface {
	// List is ordered by due_date ascending.
	List(ctx context.Context, f PayoutFilter) ([]models.PayoutListItem, error)
	Get(ctx context.Context, id string, expand Expand) (*models.PayoutListItem, error)
	Insert(ctx context.Context, p *models.Payout) error
	// MarkPaid settles an unpaid payout; an already-paid payout is returned unchanged.
	MarkPaid(ctx context.Context, id string, at time.Time) (*models.Payout, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, in models.ProfileInput) (*models.Profile, error)
}

// Store groups the collections behind one backend.
type Store interface {
	Campaigns() CampaignRepository
	Influencers() InfluencerRepository
	Assignments() AssignmentRepository
	Submissions() SubmissionRepository
	Payouts() PayoutRepository
	Profiles() ProfileRepository
}
