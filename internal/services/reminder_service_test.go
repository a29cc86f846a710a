package services

import (
	"context"
	"errors"
	"testing"

	"github.com/influencehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemindersSendOncePerDay(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, ReminderResult{DueSubmissions: 4, DuePayouts: 1, Sent: true}, res)

	require.Len(t, h.notifier.msgs, 2)
	assert.Equal(t, "Upcoming Deadlines", h.notifier.msgs[0].Title)
	assert.Equal(t, "4 submissions due within 3 days.", h.notifier.msgs[0].Body)
	assert.Equal(t, "Payouts Due", h.notifier.msgs[1].Title)
	assert.Equal(t, "1 unpaid payout due within 7 days.", h.notifier.msgs[1].Body)

	res, err = h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, ReminderResult{}, res)
	assert.Len(t, h.notifier.msgs, 2)
}

func TestRemindersRetryAfterFailedDelivery(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.notifier.err = errors.New("push service down")

	res, err := h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.False(t, res.Sent)

	h.notifier.err = nil
	res, err = h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.True(t, res.Sent)
}

func TestRemindersRetryOnlyFailedDigest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.notifier.failTitle = payoutReminderTitle

	res, err := h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.True(t, res.Sent)
	require.Len(t, h.notifier.msgs, 2)

	h.notifier.failTitle = ""
	res, err = h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.True(t, res.Sent)
	require.Len(t, h.notifier.msgs, 3)
	assert.Equal(t, payoutReminderTitle, h.notifier.msgs[2].Title)

	res, err = h.reminders.Run(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, ReminderResult{}, res)
	assert.Len(t, h.notifier.msgs, 3)
}

func TestDueSoon(t *testing.T) {
	h := newHarness(t)
	due, err := h.reminders.DueSoon(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, due, 4)
	for _, s := range due {
		assert.NotNil(t, s.Campaign)
		assert.Contains(t, []string{models.SubmissionStatusSubmitted, models.SubmissionStatusNeedsChanges}, s.Status)
	}
}
