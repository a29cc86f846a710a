package services

import (
	"context"
	"testing"
	_ "time/tzdata"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardFromSeed(t *testing.T) {
	h := newHarness(t)

	d, err := h.dashboard.Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardCounts{
		PendingApprovals:   3,
		NeedsChanges:       3,
		OverdueSubmissions: 0,
		UpcomingDeadlines:  5,
		UnpaidPayouts:      1,
	}, d.Counts())
}

func TestDashboardSingleSubmission(t *testing.T) {
	ctx := context.Background()
	f := seed.Build(owner, testNow)
	f.Submissions = f.Submissions[2:3]
	f.Submissions[0].DueDate = "2025-03-11"
	f.Payouts = nil
	h := newHarness(t, withFixture(f))
	id := f.Submissions[0].ID

	d, err := h.dashboard.Dashboard(ctx, owner)
	require.NoError(t, err)
	require.Len(t, d.PendingApprovals, 1)
	assert.Equal(t, id, d.PendingApprovals[0].ID)
	require.Len(t, d.UpcomingDeadlines, 1)
	assert.Equal(t, id, d.UpcomingDeadlines[0].ID)
	assert.Empty(t, d.OverdueSubmissions)
	assert.Empty(t, d.NeedsChanges)
	assert.NotNil(t, d.UnpaidPayouts)

	_, err = h.submissions.UpdateStatus(ctx, owner, id, models.SubmissionStatusApproved, nil)
	require.NoError(t, err)

	d, err = h.dashboard.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, d.PendingApprovals)
	assert.Empty(t, d.UpcomingDeadlines)
}

func TestAnalyticsFromSeed(t *testing.T) {
	h := newHarness(t)

	a, err := h.dashboard.Analytics(context.Background(), owner, models.AnalyticsRange7)
	require.NoError(t, err)
	assert.Equal(t, models.AnalyticsRange7, a.Range)
	assert.Len(t, a.CampaignTrend, 7)
	assert.Equal(t, "2025-03-04", a.CampaignTrend[0].Date)
	assert.Equal(t, "2025-03-10", a.CampaignTrend[6].Date)
	assert.Equal(t, 11, a.CampaignKPIs.TotalSubmissions)
	assert.InDelta(t, 200.0/11, a.CampaignKPIs.ApprovalRate, 0.001)

	require.Len(t, a.TopInfluencers, 2)
	assert.Equal(t, "Jordan Pike", a.TopInfluencers[0].InfluencerName)
	assert.Equal(t, "Mila Santos", a.TopInfluencers[1].InfluencerName)
}

func TestAnalyticsRejectsUnknownRange(t *testing.T) {
	h := newHarness(t)
	_, err := h.dashboard.Analytics(context.Background(), owner, models.AnalyticsRange(14))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, h.cache.recorded())
}

func TestDashboardUsesProfileTimezone(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	keys := cache.For(owner)

	_, err := h.profiles.Upsert(ctx, owner, models.ProfileInput{Timezone: strp("Mars/Olympus")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = h.profiles.Upsert(ctx, owner, models.ProfileInput{Timezone: strp("Pacific/Kiritimati")})
	require.NoError(t, err)
	assert.Equal(t, "Pacific/Kiritimati", h.profiles.Location(ctx, owner).String())

	h.cache.reset()
	_, err = h.dashboard.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.Contains(t, h.cache.recorded(), "write "+keys.DashboardOn("2025-03-11"))
}
