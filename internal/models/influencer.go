package models

import (
	"strings"
	"time"
)

// Influencer platforms
const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
	PlatformOther     = "other"
)

func IsValidPlatform(p string) bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformOther:
		return true
	}
	return false
}

// NormalizeHandle strips a single leading "@".
func NormalizeHandle(h string) string {
	return strings.TrimPrefix(strings.TrimSpace(h), "@")
}

type Influencer struct {
	ID             string    `json:"id"`
	OwnerUserID    string    `json:"owner_user_id"`
	Name           string    `json:"name"`
	Platform       string    `json:"platform"`
	Handle         string    `json:"handle"`
	Followers      int64     `json:"followers"`
	EngagementRate float64   `json:"engagement_rate"` // percent
	Email          *string   `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type InfluencerPatch struct {
	Name           *string  `json:"name,omitempty"`
	Platform       *string  `json:"platform,omitempty"`
	Handle         *string  `json:"handle,omitempty"`
	Followers      *int64   `json:"followers,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
	Email          *string  `json:"email,omitempty"`
}

func (p InfluencerPatch) Apply(i *Influencer) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Platform != nil {
		i.Platform = *p.Platform
	}
	if p.Handle != nil {
		i.Handle = *p.Handle
	}
	if p.Followers != nil {
		i.Followers = *p.Followers
	}
	if p.EngagementRate != nil {
		i.EngagementRate = *p.EngagementRate
	}
	if p.Email != nil {
		i.Email = p.Email
	}
}

func (p InfluencerPatch) IsEmpty() bool {
	return p.Name == nil && p.Platform == nil && p.Handle == nil &&
		p.Followers == nil && p.EngagementRate == nil && p.Email == nil
}
