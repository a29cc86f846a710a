package models

// Dashboard buckets. Each bucket is an order-preserving subsequence of
// the input lists; display truncation is left to the caller.
type Dashboard struct {
	PendingApprovals   []SubmissionListItem `json:"pending_approvals"`
	NeedsChanges       []SubmissionListItem `json:"needs_changes"`
	OverdueSubmissions []SubmissionListItem `json:"overdue_submissions"`
	UpcomingDeadlines  []SubmissionListItem `json:"upcoming_deadlines"`
	UnpaidPayouts      []PayoutListItem     `json:"unpaid_payouts"`
}

type DashboardCounts struct {
	PendingApprovals   int `json:"pending_approvals"`
	NeedsChanges       int `json:"needs_changes"`
	OverdueSubmissions int `json:"overdue_submissions"`
	UpcomingDeadlines  int `json:"upcoming_deadlines"`
	UnpaidPayouts      int `json:"unpaid_payouts"`
}

func (d Dashboard) Counts() DashboardCounts {
	return DashboardCounts{
		PendingApprovals:   len(d.PendingApprovals),
		NeedsChanges:       len(d.NeedsChanges),
		OverdueSubmissions: len(d.OverdueSubmissions),
		UpcomingDeadlines:  len(d.UpcomingDeadlines),
		UnpaidPayouts:      len(d.UnpaidPayouts),
	}
}

type AnalyticsRange int

const (
	AnalyticsRange7  AnalyticsRange = 7
	AnalyticsRange30 AnalyticsRange = 30
)

func IsValidAnalyticsRange(r AnalyticsRange) bool {
	return r == AnalyticsRange7 || r == AnalyticsRange30
}

type ChartPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Value int    `json:"value"`
}

type CampaignKPIs struct {
	TotalSubmissions int     `json:"total_submissions"`
	ApprovalRate     float64 `json:"approval_rate"`
	AvgApprovalHours float64 `json:"avg_approval_hours"`
}

type LeaderboardRow struct {
	InfluencerID   string `json:"influencer_id"`
	InfluencerName string `json:"influencer_name"`
	ApprovedCount  int    `json:"approved_count"`
}

type Analytics struct {
	Range           AnalyticsRange   `json:"range"`
	CampaignTrend   []ChartPoint     `json:"campaign_trend"`
	InfluencerTrend []ChartPoint     `json:"influencer_trend"`
	CampaignKPIs    CampaignKPIs     `json:"campaign_kpis"`
	TopInfluencers  []LeaderboardRow `json:"top_influencers"`
}

type PerformanceSummary struct {
	TotalSubmissions    int     `json:"total_submissions"`
	ApprovedSubmissions int     `json:"approved_submissions"`
	ApprovalRate        float64 `json:"approval_rate"`
}
