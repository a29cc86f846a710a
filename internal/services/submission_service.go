package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/notify"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

const statusNotificationTitle = "Submission Updated"

type SubmissionService struct {
	submissions repositories.SubmissionRepository
	campaigns   repositories.CampaignRepository
	co          *Coordinator
	notifier    Notifier
	log         *zap.Logger
}

func NewSubmissionService(store repositories.Store, co *Coordinator, notifier Notifier, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		submissions: store.Submissions(),
		campaigns:   store.Campaigns(),
		co:          co,
		notifier:    notifier,
		log:         log,
	}
}

func (s *SubmissionService) List(ctx context.Context, owner, status string) ([]models.SubmissionListItem, error) {
	if status != "" && !models.IsValidSubmissionStatus(status) {
		return nil, apperr.Validation("status", "unknown submission status")
	}
	return cached(ctx, s.co, cache.For(owner).SubmissionList(status), func(ctx context.Context) ([]models.SubmissionListItem, error) {
		f := repositories.SubmissionFilter{OwnerUserID: &owner, Expand: repositories.ExpandAll}
		if status != "" {
			f.Status = &status
		}
		return s.submissions.List(ctx, f)
	})
}

// owned hides submissions whose campaign belongs to someone else. A
// submission whose campaign is gone stays visible.
func (s *SubmissionService) owned(ctx context.Context, owner, id string, expand repositories.Expand) (*models.SubmissionListItem, error) {
	item, err := s.submissions.Get(ctx, id, expand)
	if err != nil {
		return nil, err
	}
	c, err := s.campaigns.Get(ctx, item.CampaignID)
	if err == nil && c.OwnerUserID != owner {
		return nil, apperr.NotFound("submission", id)
	}
	return item, nil
}

func (s *SubmissionService) Get(ctx context.Context, owner, id string) (*models.SubmissionListItem, error) {
	return cached(ctx, s.co, cache.For(owner).Submission(id), func(ctx context.Context) (*models.SubmissionListItem, error) {
		return s.owned(ctx, owner, id, repositories.ExpandAll)
	})
}

func (s *SubmissionService) Create(ctx context.Context, owner string, in models.SubmissionInput) (*models.Submission, error) {
	switch {
	case in.CampaignID == "":
		return nil, apperr.Validation("campaign_id", "is required")
	case in.InfluencerID == "":
		return nil, apperr.Validation("influencer_id", "is required")
	case strings.TrimSpace(in.Title) == "":
		return nil, apperr.Validation("title", "is required")
	case !models.IsValidMediaType(in.MediaType):
		return nil, apperr.Validation("media_type", "must be image, video or link")
	case strings.TrimSpace(in.MediaURL) == "":
		return nil, apperr.Validation("media_url", "is required")
	}
	if err := validateDate("due_date", in.DueDate); err != nil {
		return nil, err
	}

	c, err := s.campaigns.Get(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != owner {
		return nil, apperr.NotFound("campaign", in.CampaignID)
	}

	now := s.co.Now()
	sub := &models.Submission{
		CampaignID:   in.CampaignID,
		InfluencerID: in.InfluencerID,
		Title:        strings.TrimSpace(in.Title),
		Caption:      in.Caption,
		MediaType:    in.MediaType,
		MediaURL:     strings.TrimSpace(in.MediaURL),
		DueDate:      in.DueDate,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &now,
	}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	s.co.invalidate(ctx, owner,
		keys.Submissions(),
		keys.Dashboard(),
		keys.CampaignDetails(""),
		keys.Analytics(),
		keys.Influencer(sub.InfluencerID),
	)
	return sub, nil
}

// UpdateStatus reviews a submission. needs_changes and rejected require
// non-empty feedback; approval clears it. Cached lists and the cached
// detail are patched before the write and restored if it fails.
func (s *SubmissionService) UpdateStatus(ctx context.Context, owner, id, status string, feedback *string) (*models.Submission, error) {
	if !models.IsReviewStatus(status) {
		return nil, apperr.Validation("status", "must be approved, needs_changes or rejected")
	}
	if models.RequiresFeedback(status) && !models.HasFeedback(feedback) {
		return nil, apperr.Validation("feedback", fmt.Sprintf("is required when status is %s", status))
	}

	item, err := s.owned(ctx, owner, id, repositories.ExpandNone)
	if err != nil {
		return nil, err
	}

	keys := cache.For(owner)
	update := models.NewReviewUpdate(status, feedback, s.co.Now())
	detailKey := keys.Submission(id)
	targets := append(s.co.keysUnder(ctx, keys.Submissions(), keys.CampaignSubmissions(item.CampaignID)), detailKey)

	var updated *models.Submission
	err = s.co.optimistic(ctx, targets, func(key string, raw []byte) ([]byte, bool) {
		if key == detailKey {
			return patchJSON(raw, func(it *models.SubmissionListItem) bool {
				update.Apply(&it.Submission)
				return true
			})
		}
		return patchJSON(raw, func(list *[]models.SubmissionListItem) bool {
			return applyToSubmission(*list, id, update.Apply)
		})
	}, func(ctx context.Context) error {
		var err error
		updated, err = s.submissions.Review(ctx, id, update)
		return err
	})

	defer s.co.invalidate(ctx, owner,
		keys.Submissions(),
		keys.Submission(id),
		keys.Campaign(item.CampaignID),
		keys.Influencer(item.InfluencerID),
		keys.Dashboard(),
		keys.Analytics(),
	)
	if err != nil {
		s.log.Warn("submission status update failed", zap.String("submission_id", id), zap.Error(err))
		return nil, err
	}

	s.settleDetail(ctx, detailKey, updated)
	s.co.publish(ctx, events.New(events.EventSubmissionStatusChanged, owner, map[string]any{
		"submission_id": id,
		"campaign_id":   updated.CampaignID,
		"status":        updated.Status,
	}))
	s.notifyStatus(ctx, owner, updated.Status)
	return updated, nil
}

// settleDetail merges the stored record into the cached detail, keeping the
// cached relations.
func (s *SubmissionService) settleDetail(ctx context.Context, key string, sub *models.Submission) {
	e, ok, err := s.co.cache.Read(ctx, key)
	if err != nil || !ok {
		return
	}
	if patched, changed := patchJSON(e.Value, func(it *models.SubmissionListItem) bool {
		it.Submission = *sub
		return true
	}); changed {
		if err := s.co.cache.Write(ctx, key, patched); err != nil {
			s.log.Warn("cache settle failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *SubmissionService) notifyStatus(ctx context.Context, owner, status string) {
	if s.notifier == nil {
		return
	}
	msg := notify.Message{
		OwnerID: owner,
		Title:   statusNotificationTitle,
		Body:    fmt.Sprintf("Submission marked as %s.", status),
	}
	if err := s.notifier.Notify(context.WithoutCancel(ctx), msg); err != nil {
		s.log.Warn("status notification failed", zap.String("owner_id", owner), zap.Error(err))
	}
}

func applyToSubmission(list []models.SubmissionListItem, id string, apply func(*models.Submission)) bool {
	changed := false
	for i := range list {
		if list[i].ID == id {
			apply(&list[i].Submission)
			changed = true
		}
	}
	return changed
}
