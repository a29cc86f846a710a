package models

import (
	"strings"
	"time"
)

// Submission statuses
const (
	SubmissionStatusSubmitted    = "submitted"
	SubmissionStatusNeedsChanges = "needs_changes"
	SubmissionStatusApproved     = "approved"
	SubmissionStatusRejected     = "rejected"
)

// Media types
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeLink  = "link"
)

func IsValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusSubmitted, SubmissionStatusNeedsChanges, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

func IsValidMediaType(t string) bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeLink:
		return true
	}
	return false
}

// IsReviewStatus reports whether s can be the target of a review.
// A review may be repeated; moving back to submitted is not a review.
func IsReviewStatus(s string) bool {
	switch s {
	case SubmissionStatusApproved, SubmissionStatusNeedsChanges, SubmissionStatusRejected:
		return true
	}
	return false
}

func RequiresFeedback(status string) bool {
	return status == SubmissionStatusNeedsChanges || status == SubmissionStatusRejected
}

func HasFeedback(feedback *string) bool {
	return feedback != nil && strings.TrimSpace(*feedback) != ""
}

type Submission struct {
	ID           string     `json:"id"`
	CampaignID   string     `json:"campaign_id"`
	InfluencerID string     `json:"influencer_id"`
	Title        string     `json:"title"`
	Caption      *string    `json:"caption"`
	MediaType    string     `json:"media_type"`
	MediaURL     string     `json:"media_url"`
	DueDate      string     `json:"due_date"` // YYYY-MM-DD
	Status       string     `json:"status"`
	Feedback     *string    `json:"feedback"`
	SubmittedAt  *time.Time `json:"submitted_at"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type SubmissionInput struct {
	CampaignID   string  `json:"campaign_id"`
	InfluencerID string  `json:"influencer_id"`
	Title        string  `json:"title"`
	Caption      *string `json:"caption,omitempty"`
	MediaType    string  `json:"media_type"`
	MediaURL     string  `json:"media_url"`
	DueDate      string  `json:"due_date"`
}

// ReviewUpdate carries the fields a status transition writes.
type ReviewUpdate struct {
	Status     string
	Feedback   *string
	ReviewedAt time.Time
}

// NewReviewUpdate stamps feedback for the target status; approval clears it.
func NewReviewUpdate(status string, feedback *string, at time.Time) ReviewUpdate {
	u := ReviewUpdate{Status: status, ReviewedAt: at}
	if status != SubmissionStatusApproved && HasFeedback(feedback) {
		f := *feedback
		u.Feedback = &f
	}
	return u
}

func (u ReviewUpdate) Apply(s *Submission) {
	s.Status = u.Status
	s.Feedback = u.Feedback
	reviewed := u.ReviewedAt
	s.ReviewedAt = &reviewed
	s.UpdatedAt = u.ReviewedAt
}
