package models

import "time"

// Campaign influencer link statuses
const (
	AssignmentStatusInvited   = "invited"
	AssignmentStatusActive    = "active"
	AssignmentStatusCompleted = "completed"
)

// CampaignInfluencer links an influencer to a campaign. At most one link
// exists per (campaign_id, influencer_id) pair.
type CampaignInfluencer struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaign_id"`
	InfluencerID string    `json:"influencer_id"`
	Role         *string   `json:"role"`
	AgreedFee    *float64  `json:"agreed_fee"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AssignInput struct {
	CampaignID   string   `json:"campaign_id"`
	InfluencerID string   `json:"influencer_id"`
	Role         *string  `json:"role,omitempty"`
	AgreedFee    *float64 `json:"agreed_fee,omitempty"`
}
