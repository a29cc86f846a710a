package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/http/handlers"
	"github.com/influencehub/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handlers groups everything SetupRouter mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Campaign   *handlers.CampaignHandler
	Influencer *handlers.InfluencerHandler
	Submission *handlers.SubmissionHandler
	Payout     *handlers.PayoutHandler
	Dashboard  *handlers.DashboardHandler
	Meta       *handlers.MetaHandler
	WS         *handlers.WSHub
}

// SetupRouter mounts the API. rdb may be nil, which disables rate limiting.
func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "store": cfg.StoreBackend, "cache": cfg.CacheBackend})
	})

	api := app.Group("/api/v1")

	api.Post("/auth/local", h.Auth.IssueLocalToken)
	api.Get("/meta/enums", h.Meta.GetEnums)

	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	if rdb != nil {
		protected.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimit, cfg.RateLimitWindow, log))
	}

	// Profile
	protected.Get("/me", h.User.GetMe)
	protected.Put("/me", h.User.UpdateMe)

	// Campaigns
	protected.Get("/campaigns", h.Campaign.ListCampaigns)
	protected.Post("/campaigns", h.Campaign.CreateCampaign)
	protected.Get("/campaigns/:id", h.Campaign.GetCampaign)
	protected.Patch("/campaigns/:id", h.Campaign.UpdateCampaign)
	protected.Delete("/campaigns/:id", h.Campaign.DeleteCampaign)
	protected.Get("/campaigns/:id/influencers", h.Campaign.ListInfluencers)
	protected.Post("/campaigns/:id/influencers", h.Campaign.AssignInfluencer)
	protected.Get("/campaigns/:id/submissions", h.Campaign.ListSubmissions)

	// Influencers
	protected.Get("/influencers", h.Influencer.ListInfluencers)
	protected.Post("/influencers", h.Influencer.CreateInfluencer)
	protected.Get("/influencers/:id", h.Influencer.GetInfluencer)
	protected.Patch("/influencers/:id", h.Influencer.UpdateInfluencer)
	protected.Delete("/influencers/:id", h.Influencer.DeleteInfluencer)
	protected.Get("/influencers/:id/campaigns", h.Influencer.ListCampaigns)
	protected.Get("/influencers/:id/performance", h.Influencer.GetPerformance)

	// Submissions
	protected.Get("/submissions", h.Submission.ListSubmissions)
	protected.Post("/submissions", h.Submission.CreateSubmission)
	protected.Get("/submissions/due-soon", h.Submission.DueSoon)
	protected.Get("/submissions/:id", h.Submission.GetSubmission)
	protected.Patch("/submissions/:id/status", h.Submission.UpdateStatus)

	// Payouts
	protected.Get("/payouts", h.Payout.ListPayouts)
	protected.Post("/payouts/:id/pay", h.Payout.MarkPaid)

	// Aggregations
	protected.Get("/dashboard", h.Dashboard.GetDashboard)
	protected.Get("/analytics", h.Dashboard.GetAnalytics)

	// WebSocket
	if h.WS != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(h.WS.HandleWS))
	}
}
