// Package seed builds the demo dataset loaded into an empty store.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
)

const (
	DefaultOwner    = "local-user"
	DefaultFullName = "Local Operator"
)

// Fixture is a complete initial state for one owner.
type Fixture struct {
	Profile     models.Profile
	Campaigns   []models.Campaign
	Influencers []models.Influencer
	Links       []models.CampaignInfluencer
	Submissions []models.Submission
	Payouts     []models.Payout
}

type campaignSeed struct {
	brand, name, description string
	startOffset, endOffset   int
	budget                   float64
	status                   string
}

var campaignSeeds = []campaignSeed{
	{"Lumen Skincare", "Glow Routine Launch", "Creator-led launch for Glow Routine.", -10, 20, 35000, models.CampaignStatusActive},
	{"Pulse Fitness", "New Year Reset", "Short-form content push for January.", -30, -2, 22000, models.CampaignStatusCompleted},
	{"Coda Audio", "Studio Sessions", "UGC around new audio gear drop.", -5, 25, 18000, models.CampaignStatusActive},
}

type influencerSeed struct {
	name, platform, handle string
	followers              int64
	engagement             float64
	email                  string
}

var influencerSeeds = []influencerSeed{
	{"Avery Lane", models.PlatformInstagram, "averylanes", 95000, 3.4, "avery@creatorhub.com"},
	{"Jordan Pike", models.PlatformTikTok, "pikefitness", 210000, 4.1, "jordan@creatorhub.com"},
	{"Mila Santos", models.PlatformYouTube, "milaexplains", 54000, 2.8, "mila@creatorhub.com"},
}

const (
	submissionCount    = 12
	submissionCaption  = "Highlight the hero product and include CTA."
	submissionMediaURL = "https://example.com/asset-preview"
	changesFeedback    = "Adjust lighting and add product close-up."
)

var submissionStatusCycle = []string{
	models.SubmissionStatusApproved,
	models.SubmissionStatusNeedsChanges,
	models.SubmissionStatusSubmitted,
	models.SubmissionStatusRejected,
}

func ptr[T any](v T) *T { return &v }

// Build returns the demo dataset for owner with every relative date
// anchored at now. Date-only fields use now's location.
func Build(owner string, now time.Time) *Fixture {
	day := func(n int) time.Time { return dates.AddDays(now, n) }
	tz := now.Location().String()

	f := &Fixture{
		Profile: models.Profile{
			ID:        owner,
			FullName:  ptr(DefaultFullName),
			Timezone:  &tz,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, s := range campaignSeeds {
		f.Campaigns = append(f.Campaigns, models.Campaign{
			ID:           uuid.NewString(),
			OwnerUserID:  owner,
			BrandName:    s.brand,
			CampaignName: s.name,
			Description:  ptr(s.description),
			StartDate:    dates.Format(day(s.startOffset)),
			EndDate:      dates.Format(day(s.endOffset)),
			Budget:       s.budget,
			Status:       s.status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	for _, s := range influencerSeeds {
		f.Influencers = append(f.Influencers, models.Influencer{
			ID:             uuid.NewString(),
			OwnerUserID:    owner,
			Name:           s.name,
			Platform:       s.platform,
			Handle:         s.handle,
			Followers:      s.followers,
			EngagementRate: s.engagement,
			Email:          ptr(s.email),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	link := func(c, i int, role string, fee float64) models.CampaignInfluencer {
		return models.CampaignInfluencer{
			ID:           uuid.NewString(),
			CampaignID:   f.Campaigns[c].ID,
			InfluencerID: f.Influencers[i].ID,
			Role:         ptr(role),
			AgreedFee:    ptr(fee),
			Status:       models.AssignmentStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	f.Links = []models.CampaignInfluencer{
		link(0, 0, "Lead creator", 2000),
		link(0, 1, "Support creator", 1500),
		link(2, 2, "Feature creator", 1200),
	}

	for i := 0; i < submissionCount; i++ {
		status := submissionStatusCycle[i%len(submissionStatusCycle)]
		s := models.Submission{
			ID:           uuid.NewString(),
			CampaignID:   f.Campaigns[i%len(f.Campaigns)].ID,
			InfluencerID: f.Influencers[i%len(f.Influencers)].ID,
			Title:        fmt.Sprintf("Content concept %d", i+1),
			Caption:      ptr(submissionCaption),
			MediaType:    models.MediaTypeLink,
			MediaURL:     submissionMediaURL,
			DueDate:      dates.Format(day(2 + i%5)),
			Status:       status,
			SubmittedAt:  ptr(day(-7 + i)),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if i%3 == 0 {
			s.ReviewedAt = ptr(day(-6 + i))
		}
		if status == models.SubmissionStatusNeedsChanges {
			s.Feedback = ptr(changesFeedback)
		}
		f.Submissions = append(f.Submissions, s)
	}

	f.Payouts = []models.Payout{
		{
			ID:           uuid.NewString(),
			CampaignID:   f.Campaigns[0].ID,
			InfluencerID: f.Influencers[0].ID,
			Amount:       2000,
			Currency:     models.DefaultCurrency,
			Status:       models.PayoutStatusUnpaid,
			DueDate:      dates.Format(day(5)),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			CampaignID:   f.Campaigns[1].ID,
			InfluencerID: f.Influencers[1].ID,
			Amount:       1500,
			Currency:     models.DefaultCurrency,
			Status:       models.PayoutStatusPaid,
			DueDate:      dates.Format(day(-3)),
			PaidAt:       ptr(day(-1)),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	return f
}
