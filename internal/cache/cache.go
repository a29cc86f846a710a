// Package cache holds serialized query results keyed by view. Keys are
// colon-separated segments; the first segment is the owner identity.
package cache

import (
	"context"
	"strconv"
	"strings"
)

// Entry is a cached value. Stale entries keep their bytes until the next
// write so readers can still serve them while refetching.
type Entry struct {
	Value []byte
	Stale bool
}

type Cache interface {
	Read(ctx context.Context, key string) (Entry, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	// Invalidate marks every key under prefix stale.
	Invalidate(ctx context.Context, prefix string) error
	// Keys lists the keys under prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Matches reports whether key lies under prefix on a segment boundary,
// so "o:campaign:1" does not match "o:campaign:12".
func Matches(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+":")
}

// Keys is a key builder scoped to one owner.
type Keys struct {
	owner string
}

func For(owner string) Keys {
	return Keys{owner: owner}
}

func (k Keys) join(parts ...string) string {
	return strings.Join(append([]string{k.owner}, parts...), ":")
}

func filterSegment(status string) string {
	if status == "" {
		return "all"
	}
	return status
}

func (k Keys) Campaigns() string                 { return k.join("campaigns") }
func (k Keys) CampaignList(status string) string { return k.join("campaigns", filterSegment(status)) }
func (k Keys) Campaign(id string) string         { return k.join("campaign", id) }
func (k Keys) CampaignInfluencers(id string) string {
	return k.join("campaign", id, "influencers")
}
func (k Keys) CampaignSubmissions(id string) string {
	return k.join("campaign", id, "submissions")
}

func (k Keys) Influencers() string         { return k.join("influencers") }
func (k Keys) Influencer(id string) string { return k.join("influencer", id) }
func (k Keys) InfluencerCampaigns(id string) string {
	return k.join("influencer", id, "campaigns")
}
func (k Keys) InfluencerPerformance(id string) string {
	return k.join("influencer", id, "performance")
}

func (k Keys) Submissions() string { return k.join("submissions") }
func (k Keys) SubmissionList(status string) string {
	return k.join("submissions", filterSegment(status))
}
func (k Keys) Submission(id string) string { return k.join("submission", id) }

func (k Keys) Payouts() string   { return k.join("payouts") }
func (k Keys) Dashboard() string { return k.join("dashboard") }

// DashboardOn is the dashboard as of one calendar day (YYYY-MM-DD).
func (k Keys) DashboardOn(day string) string { return k.join("dashboard", day) }

func (k Keys) Analytics() string { return k.join("analytics") }

// AnalyticsRange is the analytics window of days ending on day.
func (k Keys) AnalyticsRange(days int, day string) string {
	return k.join("analytics", strconv.Itoa(days), day)
}
func (k Keys) Profile() string { return k.join("profile") }

// Reminders marks that the reminder digest for day was handled.
func (k Keys) Reminders(day string) string { return k.join("reminders", day) }

// ReminderKind marks one delivered digest of the day.
func (k Keys) ReminderKind(day, kind string) string { return k.join("reminders", day, kind) }

// CampaignDetails is every key rooted at campaign:<id>, or all campaign
// detail keys when id is empty.
func (k Keys) CampaignDetails(id string) string {
	if id == "" {
		return k.join("campaign")
	}
	return k.Campaign(id)
}

// SubmissionDetails is every key rooted at submission:<id>, or all
// submission detail keys when id is empty.
func (k Keys) SubmissionDetails(id string) string {
	if id == "" {
		return k.join("submission")
	}
	return k.Submission(id)
}
