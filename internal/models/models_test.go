package models

import (
	"testing"
	"time"
)

func TestIsValidPayoutTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{PayoutStatusUnpaid, PayoutStatusPaid, true},
		{PayoutStatusPaid, PayoutStatusUnpaid, false},
		{PayoutStatusPaid, PayoutStatusPaid, false},
		{PayoutStatusUnpaid, PayoutStatusUnpaid, false},
		{"nonexistent", PayoutStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidPayoutTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidPayoutTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestPayoutMarkPaid(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := Payout{Status: PayoutStatusUnpaid}

	if !p.MarkPaid(at) {
		t.Fatal("expected unpaid payout to settle")
	}
	if p.Status != PayoutStatusPaid || p.PaidAt == nil || !p.PaidAt.Equal(at) {
		t.Errorf("unexpected payout after settlement: %+v", p)
	}

	later := at.Add(time.Hour)
	if p.MarkPaid(later) {
		t.Error("expected second settlement to be rejected")
	}
	if !p.PaidAt.Equal(at) {
		t.Errorf("paid_at rewritten: got %v, want %v", p.PaidAt, at)
	}
}

func TestRequiresFeedback(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{SubmissionStatusNeedsChanges, true},
		{SubmissionStatusRejected, true},
		{SubmissionStatusApproved, false},
		{SubmissionStatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := RequiresFeedback(tt.status); got != tt.expected {
				t.Errorf("RequiresFeedback(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsReviewStatus(t *testing.T) {
	for _, s := range []string{SubmissionStatusApproved, SubmissionStatusNeedsChanges, SubmissionStatusRejected} {
		if !IsReviewStatus(s) {
			t.Errorf("IsReviewStatus(%q) = false, want true", s)
		}
	}
	if IsReviewStatus(SubmissionStatusSubmitted) {
		t.Error("submitted must not be a review target")
	}
}

func TestNewReviewUpdate(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	fb := "Add product close-up"
	blank := "   "

	tests := []struct {
		name         string
		status       string
		feedback     *string
		wantFeedback *string
	}{
		{"changes keep feedback", SubmissionStatusNeedsChanges, &fb, &fb},
		{"rejection keeps feedback", SubmissionStatusRejected, &fb, &fb},
		{"approval clears feedback", SubmissionStatusApproved, &fb, nil},
		{"blank feedback dropped", SubmissionStatusApproved, &blank, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Submission{Status: SubmissionStatusSubmitted, Feedback: &fb}
			NewReviewUpdate(tt.status, tt.feedback, at).Apply(&s)

			if s.Status != tt.status {
				t.Errorf("status = %q, want %q", s.Status, tt.status)
			}
			if s.ReviewedAt == nil || !s.ReviewedAt.Equal(at) {
				t.Errorf("reviewed_at = %v, want %v", s.ReviewedAt, at)
			}
			switch {
			case tt.wantFeedback == nil && s.Feedback != nil:
				t.Errorf("feedback = %q, want nil", *s.Feedback)
			case tt.wantFeedback != nil && (s.Feedback == nil || *s.Feedback != *tt.wantFeedback):
				t.Errorf("feedback = %v, want %q", s.Feedback, *tt.wantFeedback)
			}
		})
	}
}

func TestCampaignPatchApply(t *testing.T) {
	name := "Spring Drop"
	budget := 1200.0
	c := Campaign{ID: "c1", OwnerUserID: "o1", CampaignName: "Old", BrandName: "Brand", Budget: 10}

	CampaignPatch{CampaignName: &name, Budget: &budget}.Apply(&c)

	if c.CampaignName != name || c.Budget != budget {
		t.Errorf("patch not applied: %+v", c)
	}
	if c.BrandName != "Brand" || c.ID != "c1" || c.OwnerUserID != "o1" {
		t.Errorf("untouched fields changed: %+v", c)
	}
	if !(CampaignPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"@averylanes", "averylanes"},
		{"averylanes", "averylanes"},
		{"  @pike ", "pike"},
		{"@@double", "@double"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeHandle(tt.input); got != tt.expected {
				t.Errorf("NormalizeHandle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDashboardCounts(t *testing.T) {
	d := Dashboard{
		PendingApprovals: make([]SubmissionListItem, 2),
		UnpaidPayouts:    make([]PayoutListItem, 1),
	}
	c := d.Counts()
	if c.PendingApprovals != 2 || c.UnpaidPayouts != 1 || c.NeedsChanges != 0 {
		t.Errorf("unexpected counts: %+v", c)
	}
}
