package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/auth"
	"github.com/influencehub/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Use(AuthMiddleware(cfg, zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(GetOwnerID(c) + "|" + GetRequestID(c))
	})
	return app
}

func body(t *testing.T, app *fiber.App, token, reqID string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if reqID != "" {
		req.Header.Set(HeaderRequestID, reqID)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(out)
}

func TestAuthFallsBackToLocalOwner(t *testing.T) {
	app := newApp(&config.Config{StoreBackend: config.BackendMemory, LocalOwnerID: "local-user", JWTSecret: "s"})

	status, got := body(t, app, "", "req-1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "local-user|req-1", got)
}

func TestAuthRequiresTokenWithPostgres(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendPostgres, JWTSecret: "s"}
	app := newApp(cfg)

	status, _ := body(t, app, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = body(t, app, "Token abc", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token, err := auth.GenerateJWT("s", "brand-7", time.Hour)
	require.NoError(t, err)
	status, got := body(t, app, "Bearer "+token, "req-2")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "brand-7|req-2", got)
}
