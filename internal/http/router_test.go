package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/http/dto"
	"github.com/influencehub/backend/internal/http/handlers"
	"github.com/influencehub/backend/internal/notify"
	"github.com/influencehub/backend/internal/repositories/memory"
	"github.com/influencehub/backend/internal/seed"
	"github.com/influencehub/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*fiber.App, *seed.Fixture) {
	t.Helper()
	now := time.Now().UTC()
	clock := func() time.Time { return now }
	f := seed.Build(seed.DefaultOwner, now)

	cfg := &config.Config{
		StoreBackend: config.BackendMemory,
		CacheBackend: config.BackendMemory,
		LocalOwnerID: seed.DefaultOwner,
		JWTSecret:    "test-secret",
	}
	log := zap.NewNop()
	store := memory.New(memory.WithClock(clock), memory.WithInitialState(f))
	bus := events.NewLocalBus()
	co := services.NewCoordinator(cache.NewMemory(), bus, log, services.WithClock(clock))
	notifier := notify.NewLogNotifier(log)

	profiles := services.NewProfileService(store, co, time.UTC, log)
	reminders := services.NewReminderService(store, profiles, co, notifier, 0, log)

	app := fiber.New()
	SetupRouter(app, cfg, log, nil, Handlers{
		Auth:       handlers.NewAuthHandler(cfg, log),
		User:       handlers.NewUserHandler(profiles, log),
		Campaign:   handlers.NewCampaignHandler(services.NewCampaignService(store, co, log), log),
		Influencer: handlers.NewInfluencerHandler(services.NewInfluencerService(store, co, log), log),
		Submission: handlers.NewSubmissionHandler(services.NewSubmissionService(store, co, notifier, log), reminders, log),
		Payout:     handlers.NewPayoutHandler(services.NewPayoutService(store, co, log), log),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(store, profiles, co, log), log),
		Meta:       handlers.NewMetaHandler(),
	})
	return app, f
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestListCampaigns(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := call(t, app, "GET", "/api/v1/campaigns", "")
	require.Equal(t, fiber.StatusOK, status)

	var resp struct {
		OK   bool              `json:"ok"`
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.True(t, resp.OK)
	assert.Len(t, resp.Data, 3)

	status, raw = call(t, app, "GET", "/api/v1/campaigns?status=paused", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", decodeError(t, raw).Reason)
}

func TestUpdateStatusRejectsMissingFeedback(t *testing.T) {
	app, f := newTestApp(t)

	status, raw := call(t, app, "PATCH", "/api/v1/submissions/"+f.Submissions[2].ID+"/status", `{"status":"rejected","feedback":"  "}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	e := decodeError(t, raw)
	assert.Equal(t, "validation_failed", e.Reason)
	assert.Equal(t, "feedback", e.Field)
	assert.NotEmpty(t, e.RequestID)

	status, _ = call(t, app, "PATCH", "/api/v1/submissions/"+f.Submissions[2].ID+"/status", `{"status":"rejected","feedback":"Off brief."}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestMarkPaidMissingPayout(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := call(t, app, "POST", "/api/v1/payouts/nope/pay", "")
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", decodeError(t, raw).Reason)
}

func TestAssignInfluencerTwice(t *testing.T) {
	app, f := newTestApp(t)
	path := "/api/v1/campaigns/" + f.Campaigns[1].ID + "/influencers"
	body := `{"influencer_id":"` + f.Influencers[0].ID + `","agreed_fee":900}`

	status, _ := call(t, app, "POST", path, body)
	assert.Equal(t, fiber.StatusCreated, status)

	status, raw := call(t, app, "POST", path, body)
	require.Equal(t, fiber.StatusOK, status)
	var resp struct {
		Data dto.AssignResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.False(t, resp.Data.Created)
}

func TestDashboardAndAnalytics(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := call(t, app, "GET", "/api/v1/dashboard", "")
	require.Equal(t, fiber.StatusOK, status)
	var resp struct {
		Data dto.DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, 3, resp.Data.Counts.PendingApprovals)
	assert.Len(t, resp.Data.PendingApprovals, 3)

	status, _ = call(t, app, "GET", "/api/v1/analytics?range=30", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, raw = call(t, app, "GET", "/api/v1/analytics?range=14", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "range", decodeError(t, raw).Field)
}

func TestLocalTokenIdentifiesOwner(t *testing.T) {
	app, f := newTestApp(t)

	status, raw := call(t, app, "POST", "/api/v1/auth/local", `{"owner_id":"someone-else"}`)
	require.Equal(t, fiber.StatusOK, status)
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &auth))
	assert.Equal(t, "someone-else", auth.OwnerID)

	req := httptest.NewRequest("GET", "/api/v1/campaigns/"+f.Campaigns[0].ID, nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	status, _ = call(t, app, "GET", "/api/v1/campaigns/"+f.Campaigns[0].ID, "")
	assert.Equal(t, fiber.StatusOK, status)
}
