package aggregate

import (
	"slices"
	"time"

	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
)

const LeaderboardSize = 5

// BuildAnalytics computes the approval trend, KPIs and leaderboard for the
// last r days ending today. Submissions count when submitted strictly after
// the first day's midnight; approvals are bucketed by review day.
func BuildAnalytics(submissions []models.SubmissionListItem, r models.AnalyticsRange, now time.Time) models.Analytics {
	days := int(r)
	if days < 1 {
		days = 1
	}
	today := dates.StartOfDay(now)
	threshold := dates.AddDays(today, -(days - 1))

	trend := make([]models.ChartPoint, days)
	index := make(map[string]int, days)
	for i := range trend {
		key := dates.Format(dates.AddDays(threshold, i))
		trend[i] = models.ChartPoint{Date: key}
		index[key] = i
	}

	var (
		total, approved int
		hoursSum        float64
		hoursCount      int
		leaders         []models.LeaderboardRow
		leaderIndex     = map[string]int{}
	)

	for _, s := range submissions {
		if s.SubmittedAt == nil || !s.SubmittedAt.After(threshold) {
			continue
		}
		total++
		if s.Status != models.SubmissionStatusApproved {
			continue
		}
		approved++

		if s.ReviewedAt != nil {
			if i, ok := index[dates.Format(s.ReviewedAt.In(now.Location()))]; ok {
				trend[i].Value++
			}
		}
		if h, ok := dates.ApprovalHours(s.SubmittedAt, s.ReviewedAt); ok {
			hoursSum += h
			hoursCount++
		}

		i, ok := leaderIndex[s.InfluencerID]
		if !ok {
			row := models.LeaderboardRow{InfluencerID: s.InfluencerID}
			if s.Influencer != nil {
				row.InfluencerName = s.Influencer.Name
			}
			leaders = append(leaders, row)
			i = len(leaders) - 1
			leaderIndex[s.InfluencerID] = i
		}
		leaders[i].ApprovedCount++
	}

	kpis := models.CampaignKPIs{TotalSubmissions: total}
	if total > 0 {
		kpis.ApprovalRate = 100 * float64(approved) / float64(total)
	}
	if hoursCount > 0 {
		kpis.AvgApprovalHours = hoursSum / float64(hoursCount)
	}

	slices.SortStableFunc(leaders, func(a, b models.LeaderboardRow) int {
		return b.ApprovedCount - a.ApprovedCount
	})
	if len(leaders) > LeaderboardSize {
		leaders = leaders[:LeaderboardSize]
	}
	if leaders == nil {
		leaders = []models.LeaderboardRow{}
	}

	return models.Analytics{
		Range:           r,
		CampaignTrend:   trend,
		InfluencerTrend: slices.Clone(trend),
		CampaignKPIs:    kpis,
		TopInfluencers:  leaders,
	}
}

// InfluencerPerformance summarizes every submission given, regardless of date.
func InfluencerPerformance(submissions []models.SubmissionListItem) models.PerformanceSummary {
	var p models.PerformanceSummary
	for _, s := range submissions {
		p.TotalSubmissions++
		if s.Status == models.SubmissionStatusApproved {
			p.ApprovedSubmissions++
		}
	}
	if p.TotalSubmissions > 0 {
		p.ApprovalRate = 100 * float64(p.ApprovedSubmissions) / float64(p.TotalSubmissions)
	}
	return p
}
