package services

import (
	"context"
	"fmt"

	"github.com/influencehub/backend/internal/aggregate"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/dates"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/notify"
	"github.com/influencehub/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	deadlineReminderTitle = "Upcoming Deadlines"
	payoutReminderTitle   = "Payouts Due"

	reminderKindDeadlines = "deadlines"
	reminderKindPayouts   = "payouts"
)

// ReminderService sends each deadline digest at most once per owner per day.
type ReminderService struct {
	submissions repositories.SubmissionRepository
	payouts     repositories.PayoutRepository
	profiles    *ProfileService
	co          *Coordinator
	notifier    Notifier
	windowDays  int
	log         *zap.Logger
}

func NewReminderService(store repositories.Store, profiles *ProfileService, co *Coordinator, notifier Notifier, windowDays int, log *zap.Logger) *ReminderService {
	if windowDays <= 0 {
		windowDays = aggregate.UpcomingWindowDays
	}
	return &ReminderService{
		submissions: store.Submissions(),
		payouts:     store.Payouts(),
		profiles:    profiles,
		co:          co,
		notifier:    notifier,
		windowDays:  windowDays,
		log:         log,
	}
}

type ReminderResult struct {
	DueSubmissions int
	DuePayouts     int
	Sent           bool
}

func (s *ReminderService) Run(ctx context.Context, owner string) (ReminderResult, error) {
	now := s.co.Now().In(s.profiles.Location(ctx, owner))
	keys := cache.For(owner)
	day := dates.Format(now)
	marker := keys.Reminders(day)

	if s.delivered(ctx, marker) {
		return ReminderResult{}, nil
	}

	subs, err := s.submissions.List(ctx, repositories.SubmissionFilter{OwnerUserID: &owner})
	if err != nil {
		return ReminderResult{}, err
	}
	payouts, err := s.payouts.List(ctx, repositories.PayoutFilter{OwnerUserID: &owner})
	if err != nil {
		return ReminderResult{}, err
	}

	due := aggregate.DueWithin(subs, s.windowDays, now)
	unpaid := aggregate.BuildDashboard(nil, payouts, now).UnpaidPayouts
	res := ReminderResult{DueSubmissions: len(due), DuePayouts: len(unpaid)}

	type digest struct {
		kind string
		msg  notify.Message
	}
	var digests []digest
	if len(due) > 0 {
		digests = append(digests, digest{reminderKindDeadlines, notify.Message{
			OwnerID: owner,
			Title:   deadlineReminderTitle,
			Body:    fmt.Sprintf("%s due within %d days.", plural(len(due), "submission"), s.windowDays),
		}})
	}
	if len(unpaid) > 0 {
		digests = append(digests, digest{reminderKindPayouts, notify.Message{
			OwnerID: owner,
			Title:   payoutReminderTitle,
			Body:    fmt.Sprintf("%s due within %d days.", plural(len(unpaid), "unpaid payout"), aggregate.PayoutWindowDays),
		}})
	}

	pending := 0
	for _, d := range digests {
		kindMarker := keys.ReminderKind(day, d.kind)
		if s.delivered(ctx, kindMarker) {
			continue
		}
		if err := s.notifier.Notify(ctx, d.msg); err != nil {
			s.log.Warn("reminder notification failed",
				zap.String("owner_id", owner),
				zap.String("kind", d.kind),
				zap.Error(err),
			)
			pending++
			continue
		}
		res.Sent = true
		s.markDelivered(ctx, kindMarker)
	}

	if pending == 0 {
		s.markDelivered(ctx, marker)
	}
	return res, nil
}

func (s *ReminderService) delivered(ctx context.Context, key string) bool {
	e, ok, err := s.co.cache.Read(ctx, key)
	return err == nil && ok && !e.Stale
}

func (s *ReminderService) markDelivered(ctx context.Context, key string) {
	if err := s.co.cache.Write(ctx, key, []byte(`{"sent":true}`)); err != nil {
		s.log.Warn("reminder marker write failed", zap.String("key", key), zap.Error(err))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// DueSoon lists the owner's open submissions due in the reminder window.
func (s *ReminderService) DueSoon(ctx context.Context, owner string) ([]models.SubmissionListItem, error) {
	now := s.co.Now().In(s.profiles.Location(ctx, owner))
	subs, err := s.submissions.List(ctx, repositories.SubmissionFilter{OwnerUserID: &owner, Expand: repositories.ExpandAll})
	if err != nil {
		return nil, err
	}
	return aggregate.DueWithin(subs, s.windowDays, now), nil
}
