// Package aggregate derives dashboard buckets, analytics and performance
// summaries from store query results. Functions here are pure: they take
// the current time explicitly and never return errors; malformed or
// missing fields drop the record from date-based buckets.
package aggregate

import (
	"time"

	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
)

const (
	UpcomingWindowDays = 3
	PayoutWindowDays   = 7
)

// BuildDashboard splits submissions and payouts into action buckets.
// Buckets keep the input order. Day boundaries are taken in now's location.
func BuildDashboard(submissions []models.SubmissionListItem, payouts []models.PayoutListItem, now time.Time) models.Dashboard {
	today := dates.StartOfDay(now)
	loc := now.Location()
	upcomingEnd := dates.AddDays(today, UpcomingWindowDays)
	payoutEnd := dates.AddDays(today, PayoutWindowDays)

	d := models.Dashboard{
		PendingApprovals:   []models.SubmissionListItem{},
		NeedsChanges:       []models.SubmissionListItem{},
		OverdueSubmissions: []models.SubmissionListItem{},
		UpcomingDeadlines:  []models.SubmissionListItem{},
		UnpaidPayouts:      []models.PayoutListItem{},
	}

	for _, s := range submissions {
		switch s.Status {
		case models.SubmissionStatusSubmitted:
			d.PendingApprovals = append(d.PendingApprovals, s)
		case models.SubmissionStatusNeedsChanges:
			d.NeedsChanges = append(d.NeedsChanges, s)
		}

		if s.Status == models.SubmissionStatusApproved {
			continue
		}
		due, err := dates.Parse(s.DueDate, loc)
		if err != nil {
			continue
		}
		if due.Before(today) {
			d.OverdueSubmissions = append(d.OverdueSubmissions, s)
		} else if dates.Within(due, today, upcomingEnd) {
			d.UpcomingDeadlines = append(d.UpcomingDeadlines, s)
		}
	}

	for _, p := range payouts {
		if p.Status != models.PayoutStatusUnpaid {
			continue
		}
		due, err := dates.Parse(p.DueDate, loc)
		if err != nil {
			continue
		}
		if dates.Within(due, today, payoutEnd) {
			d.UnpaidPayouts = append(d.UnpaidPayouts, p)
		}
	}

	return d
}

// DueWithin returns the submissions still awaiting work (submitted or
// needs_changes) due in [today, today+days].
func DueWithin(submissions []models.SubmissionListItem, days int, now time.Time) []models.SubmissionListItem {
	today := dates.StartOfDay(now)
	end := dates.AddDays(today, days)

	out := []models.SubmissionListItem{}
	for _, s := range submissions {
		if s.Status != models.SubmissionStatusSubmitted && s.Status != models.SubmissionStatusNeedsChanges {
			continue
		}
		due, err := dates.Parse(s.DueDate, now.Location())
		if err == nil && dates.Within(due, today, end) {
			out = append(out, s)
		}
	}
	return out
}
