package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	platformOptions = []MetaOption{
		{ID: models.PlatformInstagram, Label: "Instagram"},
		{ID: models.PlatformTikTok, Label: "TikTok"},
		{ID: models.PlatformYouTube, Label: "YouTube"},
		{ID: models.PlatformOther, Label: "Other"},
	}
	mediaTypeOptions = []MetaOption{
		{ID: models.MediaTypeImage, Label: "Image"},
		{ID: models.MediaTypeVideo, Label: "Video"},
		{ID: models.MediaTypeLink, Label: "Link"},
	}
	campaignStatusOptions = []MetaOption{
		{ID: models.CampaignStatusDraft, Label: "Draft"},
		{ID: models.CampaignStatusActive, Label: "Active"},
		{ID: models.CampaignStatusCompleted, Label: "Completed"},
	}
	submissionStatusOptions = []MetaOption{
		{ID: models.SubmissionStatusSubmitted, Label: "Submitted"},
		{ID: models.SubmissionStatusNeedsChanges, Label: "Needs changes"},
		{ID: models.SubmissionStatusApproved, Label: "Approved"},
		{ID: models.SubmissionStatusRejected, Label: "Rejected"},
	}
)

// GetEnums lists the values forms offer for each enumerated field.
func (h *MetaHandler) GetEnums(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"platforms":           platformOptions,
		"media_types":         mediaTypeOptions,
		"campaign_statuses":   campaignStatusOptions,
		"submission_statuses": submissionStatusOptions,
		"analytics_ranges":    []models.AnalyticsRange{models.AnalyticsRange7, models.AnalyticsRange30},
	})
}
