package models

// Narrowed projections attached by relationship expansion. A missing
// foreign row is represented by a nil pointer.

type CampaignRef struct {
	ID           string `json:"id"`
	CampaignName string `json:"campaign_name"`
	BrandName    string `json:"brand_name"`
	Status       string `json:"status,omitempty"`
}

type InfluencerRef struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Handle         string   `json:"handle"`
	Platform       string   `json:"platform,omitempty"`
	Followers      *int64   `json:"followers,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

func NewCampaignRef(c *Campaign) *CampaignRef {
	if c == nil {
		return nil
	}
	return &CampaignRef{ID: c.ID, CampaignName: c.CampaignName, BrandName: c.BrandName}
}

func NewInfluencerRef(i *Influencer) *InfluencerRef {
	if i == nil {
		return nil
	}
	return &InfluencerRef{ID: i.ID, Name: i.Name, Handle: i.Handle, Platform: i.Platform}
}

type SubmissionListItem struct {
	Submission
	Campaign   *CampaignRef   `json:"campaign"`
	Influencer *InfluencerRef `json:"influencer"`
}

type PayoutListItem struct {
	Payout
	Campaign   *CampaignRef   `json:"campaign"`
	Influencer *InfluencerRef `json:"influencer"`
}

type CampaignInfluencerDetails struct {
	CampaignInfluencer
	Campaign   *CampaignRef   `json:"campaign,omitempty"`
	Influencer *InfluencerRef `json:"influencer,omitempty"`
}

type InfluencerCampaignLink struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	Role      *string      `json:"role"`
	AgreedFee *float64     `json:"agreed_fee"`
	Campaign  *CampaignRef `json:"campaign"`
}
