package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/notify"
	"github.com/influencehub/backend/internal/repositories"
	"github.com/influencehub/backend/internal/repositories/memory"
	"github.com/influencehub/backend/internal/seed"
	"go.uber.org/zap"
)

const owner = seed.DefaultOwner

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

var errBackend = errors.New("backend unavailable")

func strp(s string) *string { return &s }

// recordingCache logs every write and invalidation in order.
type recordingCache struct {
	*cache.Memory
	mu  sync.Mutex
	ops []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{Memory: cache.NewMemory()}
}

func (r *recordingCache) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recordingCache) Write(ctx context.Context, key string, value []byte) error {
	r.record("write " + key)
	return r.Memory.Write(ctx, key, value)
}

func (r *recordingCache) Invalidate(ctx context.Context, prefix string) error {
	r.record("invalidate " + prefix)
	return r.Memory.Invalidate(ctx, prefix)
}

func (r *recordingCache) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *recordingCache) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *recordingCache) value(t *testing.T, key string) cache.Entry {
	t.Helper()
	e, ok, err := r.Memory.Read(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("cache entry %q missing (err=%v)", key, err)
	}
	return e
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
	// failTitle rejects only messages with this title.
	failTitle string
}

func (f *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	if f.failTitle != "" && msg.Title == f.failTitle {
		return errBackend
	}
	return f.err
}

// failingStore swaps in repositories whose writes fail.
type failingStore struct {
	repositories.Store
	failReview   bool
	failMarkPaid bool
}

func (f failingStore) Submissions() repositories.SubmissionRepository {
	if f.failReview {
		return failingSubmissions{f.Store.Submissions()}
	}
	return f.Store.Submissions()
}

func (f failingStore) Payouts() repositories.PayoutRepository {
	if f.failMarkPaid {
		return failingPayouts{f.Store.Payouts()}
	}
	return f.Store.Payouts()
}

type failingSubmissions struct {
	repositories.SubmissionRepository
}

func (failingSubmissions) Review(context.Context, string, models.ReviewUpdate) (*models.Submission, error) {
	return nil, errBackend
}

type failingPayouts struct {
	repositories.PayoutRepository
}

func (failingPayouts) MarkPaid(context.Context, string, time.Time) (*models.Payout, error) {
	return nil, errBackend
}

type harness struct {
	fixture  *seed.Fixture
	store    repositories.Store
	cache    *recordingCache
	notifier *fakeNotifier
	events   []events.Event

	campaigns   *CampaignService
	influencers *InfluencerService
	submissions *SubmissionService
	payouts     *PayoutService
	profiles    *ProfileService
	dashboard   *DashboardService
	reminders   *ReminderService
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	wrap    func(repositories.Store) repositories.Store
	fixture *seed.Fixture
}

func withFailures(failReview, failMarkPaid bool) harnessOption {
	return func(c *harnessConfig) {
		c.wrap = func(s repositories.Store) repositories.Store {
			return failingStore{Store: s, failReview: failReview, failMarkPaid: failMarkPaid}
		}
	}
}

func withFixture(f *seed.Fixture) harnessOption {
	return func(c *harnessConfig) { c.fixture = f }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	cfg := harnessConfig{fixture: seed.Build(owner, testNow)}
	for _, opt := range opts {
		opt(&cfg)
	}

	clock := func() time.Time { return testNow }
	var store repositories.Store = memory.New(memory.WithClock(clock), memory.WithInitialState(cfg.fixture))
	if cfg.wrap != nil {
		store = cfg.wrap(store)
	}

	h := &harness{fixture: cfg.fixture, store: store, cache: newRecordingCache(), notifier: &fakeNotifier{}}

	bus := events.NewLocalBus()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_ = bus.Subscribe(ctx, events.StreamActivity, func(e events.Event) { h.events = append(h.events, e) })

	log := zap.NewNop()
	co := NewCoordinator(h.cache, bus, log, WithClock(clock))
	h.campaigns = NewCampaignService(store, co, log)
	h.influencers = NewInfluencerService(store, co, log)
	h.submissions = NewSubmissionService(store, co, h.notifier, log)
	h.payouts = NewPayoutService(store, co, log)
	h.profiles = NewProfileService(store, co, time.UTC, log)
	h.dashboard = NewDashboardService(store, h.profiles, co, log)
	h.reminders = NewReminderService(store, h.profiles, co, h.notifier, 0, log)
	return h
}

func (h *harness) eventTypes() []string {
	var out []string
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}
