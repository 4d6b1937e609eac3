package http

import (
	"time"

	"gifting_platform/internal/config"
	"gifting_platform/internal/http/handlers"
	"gifting_platform/internal/http/middleware"
	"gifting_platform/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface around an already constructed handler
// and event hub.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, hub *ws.Hub, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(h.DB, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second))

	// Auth (dev mode only; production auth is terminated at the gateway)
	api.POST("/auth", h.Auth)

	// Public reads
	api.GET("/catalog", h.GiftCatalog)
	api.GET("/levels", h.LevelTable)
	api.GET("/users/:id/gifts", h.ReceivedGifts)
	api.GET("/top", h.TopReceivers)

	// Authenticated user surface
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/me/history", middleware.JWT(), h.MyHistory)

	// Gift sends get a per-user limiter on top of the per-IP one
	giftRL := middleware.GiftRateLimit(cfg.GiftRateLimit, time.Duration(cfg.GiftRateWindow)*time.Second)
	api.POST("/gifts/send", middleware.JWT(), giftRL, h.SendGift)

	// Admin surface
	admin := api.Group("/admin", middleware.JWT(), middleware.RequireAdmin(cfg.AdminUserIDs))
	admin.GET("/settings/:key", h.GetSetting)
	admin.PUT("/settings/:key", h.UpdateSetting)
	admin.GET("/audit", h.AuditLog)

	// WebSocket event stream (level-ups)
	r.GET("/ws", h.WS(hub))
}
