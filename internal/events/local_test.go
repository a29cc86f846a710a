package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBus(t *testing.T) {
	bus := NewLocalBus()
	ctx, cancel := context.WithCancel(context.Background())

	var got []Event
	require.NoError(t, bus.Subscribe(ctx, StreamActivity, func(e Event) { got = append(got, e) }))

	require.NoError(t, bus.Publish(context.Background(), StreamActivity, New(EventPayoutSettled, "u1", map[string]any{"payout_id": "p1"})))
	require.NoError(t, bus.Publish(context.Background(), StreamNotify, New(EventNotification, "u1", nil)))

	require.Len(t, got, 1)
	assert.Equal(t, EventPayoutSettled, got[0].Type)
	assert.Equal(t, "u1", got[0].OwnerID)

	cancel()
	assert.Eventually(t, func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return len(bus.handlers[StreamActivity]) == 0
	}, time.Second, 10*time.Millisecond)
}
