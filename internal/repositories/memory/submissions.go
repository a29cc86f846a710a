package memory

import (
	"context"
	"slices"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
)

type submissionRepo struct{ s *Store }

func (r submissionRepo) item(sub models.Submission, expand repositories.Expand) models.SubmissionListItem {
	return models.SubmissionListItem{
		Submission: sub,
		Campaign:   r.s.campaignRef(sub.CampaignID, expand),
		Influencer: r.s.influencerRef(sub.InfluencerID, expand),
	}
}

func (r submissionRepo) List(_ context.Context, f repositories.SubmissionFilter) ([]models.SubmissionListItem, error) {
	defer r.s.read()()

	out := []models.SubmissionListItem{}
	for _, sub := range r.s.submissions {
		if !matches(f.Status, sub.Status) || !matches(f.CampaignID, sub.CampaignID) ||
			!matches(f.InfluencerID, sub.InfluencerID) || !r.s.ownedCampaign(f.OwnerUserID, sub.CampaignID) {
			continue
		}
		out = append(out, r.item(sub, f.Expand))
	}
	return newestFirst(out, func(i models.SubmissionListItem) time.Time { return i.CreatedAt }), nil
}

func (r submissionRepo) find(id string) *models.Submission {
	for i := range r.s.submissions {
		if r.s.submissions[i].ID == id {
			return &r.s.submissions[i]
		}
	}
	return nil
}

func (r submissionRepo) Get(_ context.Context, id string, expand repositories.Expand) (*models.SubmissionListItem, error) {
	defer r.s.read()()

	sub := r.find(id)
	if sub == nil {
		return nil, apperr.NotFound("submission", id)
	}
	item := r.item(*sub, expand)
	return &item, nil
}

// Insert keeps a caller-supplied id.
func (r submissionRepo) Insert(_ context.Context, sub *models.Submission) error {
	defer r.s.write()()

	now := r.s.now()
	if sub.ID == "" {
		sub.ID = newID()
	}
	sub.CreatedAt, sub.UpdatedAt = now, now
	r.s.submissions = append(r.s.submissions, *sub)
	return nil
}

func (r submissionRepo) Review(_ context.Context, id string, u models.ReviewUpdate) (*models.Submission, error) {
	defer r.s.write()()

	sub := r.find(id)
	if sub == nil {
		return nil, apperr.NotFound("submission", id)
	}
	u.Apply(sub)
	out := *sub
	return &out, nil
}

func (r submissionRepo) Delete(_ context.Context, id string) error {
	defer r.s.write()()

	n := len(r.s.submissions)
	r.s.submissions = slices.DeleteFunc(r.s.submissions, func(sub models.Submission) bool { return sub.ID == id })
	if len(r.s.submissions) == n {
		return apperr.NotFound("submission", id)
	}
	return nil
}
