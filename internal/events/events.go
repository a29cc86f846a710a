package events

import (
	"context"
	"time"
)

// Event types
const (
	EventSubmissionStatusChanged = "submission_status_changed"
	EventPayoutSettled           = "payout_settled"
	EventInfluencerAssigned      = "influencer_assigned"
	EventCacheInvalidated        = "cache_invalidated"
	EventNotification            = "notification"
)

// Streams
const (
	StreamActivity = "events:activity"
	StreamNotify   = "events:notify"
)

type Event struct {
	Type      string         `json:"type"`
	OwnerID   string         `json:"owner_id"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func New(eventType, ownerID string, payload map[string]any) Event {
	return Event{Type: eventType, OwnerID: ownerID, Payload: payload, CreatedAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
