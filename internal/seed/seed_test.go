package seed

import (
	"testing"
	"time"

	"github.com/influencehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := Build(DefaultOwner, now)

	require.Len(t, f.Campaigns, 3)
	require.Len(t, f.Influencers, 3)
	require.Len(t, f.Links, 3)
	require.Len(t, f.Submissions, 12)
	require.Len(t, f.Payouts, 2)

	assert.Equal(t, DefaultOwner, f.Profile.ID)
	assert.Equal(t, "2025-02-28", f.Campaigns[0].StartDate)
	assert.Equal(t, "2025-03-30", f.Campaigns[0].EndDate)
	assert.Equal(t, models.CampaignStatusCompleted, f.Campaigns[1].Status)

	counts := map[string]int{}
	for _, s := range f.Submissions {
		counts[s.Status]++
		assert.Equal(t, s.Status == models.SubmissionStatusNeedsChanges, s.Feedback != nil, s.Title)
	}
	assert.Equal(t, map[string]int{
		models.SubmissionStatusApproved:     3,
		models.SubmissionStatusNeedsChanges: 3,
		models.SubmissionStatusSubmitted:    3,
		models.SubmissionStatusRejected:     3,
	}, counts)

	first := f.Submissions[0]
	assert.Equal(t, "Content concept 1", first.Title)
	assert.Equal(t, "2025-03-12", first.DueDate)
	require.NotNil(t, first.ReviewedAt)
	assert.Equal(t, now.AddDate(0, 0, -6), *first.ReviewedAt)
	assert.Nil(t, f.Submissions[1].ReviewedAt)

	assert.Nil(t, f.Payouts[0].PaidAt)
	require.NotNil(t, f.Payouts[1].PaidAt)
	assert.Equal(t, models.PayoutStatusPaid, f.Payouts[1].Status)
}

func TestBuildUsesFreshIDs(t *testing.T) {
	now := time.Now()
	a, b := Build(DefaultOwner, now), Build(DefaultOwner, now)
	assert.NotEqual(t, a.Campaigns[0].ID, b.Campaigns[0].ID)
	assert.Equal(t, a.Campaigns[0].ID, a.Submissions[0].CampaignID)
}
