// Package notify delivers (title, body) notifications to an external sink.
// Delivery is best effort: callers log failures and move on.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/influencehub/backend/internal/events"
	"go.uber.org/zap"
)

type Message struct {
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// HTTPClient posts messages to <baseURL>/notify.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *HTTPClient) Notify(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification sink unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification sink returned %d: %s", resp.StatusCode, string(b))
	}
	c.log.Debug("notification delivered", zap.String("owner_id", msg.OwnerID), zap.String("title", msg.Title))
	return nil
}

// EventNotifier hands messages to the notify stream for a bridge process.
type EventNotifier struct {
	publisher events.Publisher
}

func NewEventNotifier(publisher events.Publisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) Notify(ctx context.Context, msg Message) error {
	return n.publisher.Publish(ctx, events.StreamNotify, events.New(events.EventNotification, msg.OwnerID, map[string]any{
		"title": msg.Title,
		"body":  msg.Body,
	}))
}

// MessageFromEvent rebuilds a Message from a notify stream event.
func MessageFromEvent(e events.Event) (Message, bool) {
	if e.Type != events.EventNotification {
		return Message{}, false
	}
	title, _ := e.Payload["title"].(string)
	body, _ := e.Payload["body"].(string)
	if title == "" && body == "" {
		return Message{}, false
	}
	return Message{OwnerID: e.OwnerID, Title: title, Body: body}, true
}

// LogNotifier writes messages to the log. Used when no sink is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.log.Info("notification",
		zap.String("owner_id", msg.OwnerID),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
	)
	return nil
}
