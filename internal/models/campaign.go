package models

import "time"

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

func IsValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted:
		return true
	}
	return false
}

type Campaign struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	BrandName    string    `json:"brand_name"`
	CampaignName string    `json:"campaign_name"`
	Description  *string   `json:"description"`
	StartDate    string    `json:"start_date"` // YYYY-MM-DD
	EndDate      string    `json:"end_date"`   // YYYY-MM-DD
	Budget       float64   `json:"budget"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CampaignPatch is a partial update. Nil fields are left untouched;
// id, owner and created_at are never patchable.
type CampaignPatch struct {
	BrandName    *string  `json:"brand_name,omitempty"`
	CampaignName *string  `json:"campaign_name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Budget       *float64 `json:"budget,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

func (p CampaignPatch) Apply(c *Campaign) {
	if p.BrandName != nil {
		c.BrandName = *p.BrandName
	}
	if p.CampaignName != nil {
		c.CampaignName = *p.CampaignName
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.Budget != nil {
		c.Budget = *p.Budget
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

func (p CampaignPatch) IsEmpty() bool {
	return p.BrandName == nil && p.CampaignName == nil && p.Description == nil &&
		p.StartDate == nil && p.EndDate == nil && p.Budget == nil && p.Status == nil
}
