package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/influencehub/backend/internal/auth"
	"github.com/influencehub/backend/internal/config"
	"github.com/influencehub/backend/internal/events"
	"go.uber.org/zap"
)

// WSHub pushes activity events, cache invalidations included, to the
// owner's open connections so clients know which queries to refetch.
type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamActivity, h.SendToOwner)
}

func (h *WSHub) SendToOwner(event events.Event) {
	if event.OwnerID == "" {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("ws encode failed", zap.String("type", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[event.OwnerID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws write failed", zap.String("owner_id", event.OwnerID), zap.Error(err))
		}
	}
}

// Connections reports how many sockets owner has open.
func (h *WSHub) Connections(owner string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[owner])
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) owner(conn *websocket.Conn) (string, bool) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		if h.cfg.UsePostgres() {
			return "", false
		}
		return h.cfg.LocalOwnerID, true
	}
	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		return "", false
	}
	return claims.OwnerID, true
}

func (h *WSHub) register(owner string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[owner] = append(h.connections[owner], conn)
}

func (h *WSHub) unregister(owner string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.connections[owner]
	for i, c := range conns {
		if c == conn {
			h.connections[owner] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[owner]) == 0 {
		delete(h.connections, owner)
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	owner, ok := h.owner(conn)
	if !ok {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	h.register(owner, conn)
	defer func() {
		h.unregister(owner, conn)
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
