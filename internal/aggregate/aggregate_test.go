package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/influencehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func day(n int) string {
	return now.AddDate(0, 0, n).Format("2006-01-02")
}

func at(t time.Time) *time.Time { return &t }

func sub(id, status, due string) models.SubmissionListItem {
	return models.SubmissionListItem{Submission: models.Submission{ID: id, Status: status, DueDate: due}}
}

func payout(id, status, due string) models.PayoutListItem {
	return models.PayoutListItem{Payout: models.Payout{ID: id, Status: status, DueDate: due}}
}

func ids[T any](items []T, id func(T) string) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func subIDs(items []models.SubmissionListItem) []string {
	return ids(items, func(s models.SubmissionListItem) string { return s.ID })
}

func TestDashboardDueTomorrow(t *testing.T) {
	d := BuildDashboard([]models.SubmissionListItem{
		sub("s", models.SubmissionStatusSubmitted, day(1)),
	}, nil, now)

	assert.Equal(t, []string{"s"}, subIDs(d.PendingApprovals))
	assert.Equal(t, []string{"s"}, subIDs(d.UpcomingDeadlines))
	assert.Empty(t, d.OverdueSubmissions)
	assert.Empty(t, d.NeedsChanges)
}

func TestDashboardBuckets(t *testing.T) {
	subs := []models.SubmissionListItem{
		sub("approved-late", models.SubmissionStatusApproved, day(-5)),
		sub("changes-late", models.SubmissionStatusNeedsChanges, day(-1)),
		sub("rejected-today", models.SubmissionStatusRejected, day(0)),
		sub("pending-edge", models.SubmissionStatusSubmitted, day(3)),
		sub("pending-far", models.SubmissionStatusSubmitted, day(4)),
		sub("bad-date", models.SubmissionStatusSubmitted, "soon"),
	}
	d := BuildDashboard(subs, nil, now)

	assert.Equal(t, []string{"pending-edge", "pending-far", "bad-date"}, subIDs(d.PendingApprovals))
	assert.Equal(t, []string{"changes-late"}, subIDs(d.NeedsChanges))
	assert.Equal(t, []string{"changes-late"}, subIDs(d.OverdueSubmissions))
	assert.Equal(t, []string{"rejected-today", "pending-edge"}, subIDs(d.UpcomingDeadlines))
}

func TestDashboardUnpaidPayouts(t *testing.T) {
	payouts := []models.PayoutListItem{
		payout("past", models.PayoutStatusUnpaid, day(-1)),
		payout("today", models.PayoutStatusUnpaid, day(0)),
		payout("edge", models.PayoutStatusUnpaid, day(7)),
		payout("far", models.PayoutStatusUnpaid, day(8)),
		payout("paid", models.PayoutStatusPaid, day(2)),
	}
	d := BuildDashboard(nil, payouts, now)

	got := ids(d.UnpaidPayouts, func(p models.PayoutListItem) string { return p.ID })
	assert.Equal(t, []string{"today", "edge"}, got)
	assert.Equal(t, 2, d.Counts().UnpaidPayouts)
}

func TestDashboardEmptyBucketsAreNotNil(t *testing.T) {
	d := BuildDashboard(nil, nil, now)
	assert.NotNil(t, d.PendingApprovals)
	assert.NotNil(t, d.UnpaidPayouts)
}

func TestDueWithin(t *testing.T) {
	subs := []models.SubmissionListItem{
		sub("a", models.SubmissionStatusSubmitted, day(1)),
		sub("b", models.SubmissionStatusApproved, day(1)),
		sub("c", models.SubmissionStatusNeedsChanges, day(2)),
		sub("d", models.SubmissionStatusRejected, day(0)),
		sub("e", models.SubmissionStatusNeedsChanges, day(0)),
	}
	assert.Equal(t, []string{"a", "e"}, subIDs(DueWithin(subs, 1, now)))
	assert.Equal(t, []string{"a", "c", "e"}, subIDs(DueWithin(subs, 2, now)))
}

func TestAnalyticsScenario(t *testing.T) {
	s := sub("s", models.SubmissionStatusApproved, day(1))
	s.InfluencerID = "inf"
	s.SubmittedAt = at(now.AddDate(0, 0, -5))
	s.ReviewedAt = at(now.AddDate(0, 0, -4))

	a := BuildAnalytics([]models.SubmissionListItem{s}, models.AnalyticsRange7, now)

	require.Len(t, a.CampaignTrend, 7)
	for _, p := range a.CampaignTrend {
		want := 0
		if p.Date == day(-4) {
			want = 1
		}
		assert.Equal(t, want, p.Value, p.Date)
	}
	assert.Equal(t, 1, a.CampaignKPIs.TotalSubmissions)
	assert.InDelta(t, 100, a.CampaignKPIs.ApprovalRate, 1e-9)
	assert.InDelta(t, 24, a.CampaignKPIs.AvgApprovalHours, 1e-9)
	assert.Equal(t, a.CampaignTrend, a.InfluencerTrend)
}

func TestAnalyticsTrendShape(t *testing.T) {
	for _, r := range []models.AnalyticsRange{models.AnalyticsRange7, models.AnalyticsRange30} {
		t.Run(fmt.Sprint(int(r)), func(t *testing.T) {
			a := BuildAnalytics(nil, r, now)
			require.Len(t, a.CampaignTrend, int(r))
			assert.Equal(t, day(-(int(r) - 1)), a.CampaignTrend[0].Date)
			assert.Equal(t, day(0), a.CampaignTrend[len(a.CampaignTrend)-1].Date)
			assert.Zero(t, a.CampaignKPIs.TotalSubmissions)
			assert.Zero(t, a.CampaignKPIs.ApprovalRate)
			assert.Zero(t, a.CampaignKPIs.AvgApprovalHours)
			assert.Empty(t, a.TopInfluencers)
		})
	}
}

func TestAnalyticsThresholdIsStrict(t *testing.T) {
	threshold := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	onEdge := sub("edge", models.SubmissionStatusSubmitted, day(1))
	onEdge.SubmittedAt = at(threshold)
	inside := sub("inside", models.SubmissionStatusSubmitted, day(1))
	inside.SubmittedAt = at(threshold.Add(time.Second))
	never := sub("never", models.SubmissionStatusSubmitted, day(1))

	a := BuildAnalytics([]models.SubmissionListItem{onEdge, inside, never}, models.AnalyticsRange7, now)
	assert.Equal(t, 1, a.CampaignKPIs.TotalSubmissions)
	assert.Zero(t, a.CampaignKPIs.ApprovalRate)
}

func TestAnalyticsDropsReviewsOutsideWindow(t *testing.T) {
	s := sub("s", models.SubmissionStatusApproved, day(1))
	s.SubmittedAt = at(now.Add(-time.Hour))
	s.ReviewedAt = at(now.AddDate(0, 0, 1))

	a := BuildAnalytics([]models.SubmissionListItem{s}, models.AnalyticsRange7, now)
	require.Len(t, a.CampaignTrend, 7)
	for _, p := range a.CampaignTrend {
		assert.Zero(t, p.Value)
	}
	assert.Equal(t, 1, a.CampaignKPIs.TotalSubmissions)
}

func TestAnalyticsClampsNegativeLatency(t *testing.T) {
	s := sub("s", models.SubmissionStatusApproved, day(1))
	s.SubmittedAt = at(now.Add(-2 * time.Hour))
	s.ReviewedAt = at(now.Add(-3 * time.Hour))

	other := sub("o", models.SubmissionStatusApproved, day(1))
	other.SubmittedAt = at(now.Add(-5 * time.Hour))
	other.ReviewedAt = at(now.Add(-time.Hour))

	unreviewed := sub("u", models.SubmissionStatusApproved, day(1))
	unreviewed.SubmittedAt = at(now.Add(-time.Hour))

	a := BuildAnalytics([]models.SubmissionListItem{s, other, unreviewed}, models.AnalyticsRange7, now)
	assert.InDelta(t, 2, a.CampaignKPIs.AvgApprovalHours, 1e-9)
	assert.InDelta(t, 100, a.CampaignKPIs.ApprovalRate, 1e-9)
}

func TestAnalyticsLeaderboard(t *testing.T) {
	var subs []models.SubmissionListItem
	add := func(influencer string, approved int, named bool) {
		for i := 0; i < approved; i++ {
			s := sub(fmt.Sprintf("%s-%d", influencer, i), models.SubmissionStatusApproved, day(1))
			s.InfluencerID = influencer
			s.SubmittedAt = at(now.Add(-time.Hour))
			if named {
				s.Influencer = &models.InfluencerRef{ID: influencer, Name: "Name " + influencer}
			}
			subs = append(subs, s)
		}
	}
	add("a", 1, true)
	add("b", 3, true)
	add("c", 1, false)
	add("d", 2, true)
	add("e", 1, true)
	add("f", 1, true)

	rejected := sub("r", models.SubmissionStatusRejected, day(1))
	rejected.InfluencerID = "g"
	rejected.SubmittedAt = at(now.Add(-time.Hour))
	subs = append(subs, rejected)

	a := BuildAnalytics(subs, models.AnalyticsRange30, now)

	got := ids(a.TopInfluencers, func(r models.LeaderboardRow) string { return r.InfluencerID })
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, got)
	assert.Equal(t, 3, a.TopInfluencers[0].ApprovedCount)
	assert.Equal(t, "Name b", a.TopInfluencers[0].InfluencerName)
	assert.Equal(t, "", a.TopInfluencers[3].InfluencerName)
}

func TestInfluencerPerformance(t *testing.T) {
	tests := []struct {
		name string
		subs []models.SubmissionListItem
		want models.PerformanceSummary
	}{
		{"empty", nil, models.PerformanceSummary{}},
		{
			"mixed",
			[]models.SubmissionListItem{
				sub("1", models.SubmissionStatusApproved, day(0)),
				sub("2", models.SubmissionStatusRejected, day(0)),
				sub("3", models.SubmissionStatusApproved, day(0)),
				sub("4", models.SubmissionStatusSubmitted, day(0)),
			},
			models.PerformanceSummary{TotalSubmissions: 4, ApprovedSubmissions: 2, ApprovalRate: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InfluencerPerformance(tt.subs))
		})
	}
}
