package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gifting_platform/internal/catalog"
	"gifting_platform/internal/config"
	"gifting_platform/internal/db"
	httpServer "gifting_platform/internal/http"
	"gifting_platform/internal/http/handlers"
	"gifting_platform/internal/http/middleware"
	"gifting_platform/internal/levels"
	"gifting_platform/internal/logger"
	"gifting_platform/internal/notify"
	"gifting_platform/internal/repository"
	"gifting_platform/internal/service"
	"gifting_platform/internal/settings"
	"gifting_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	var redisClient *redis.Client
	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, events and rate limits disabled", "error", err)
			redisClient = nil
		} else {
			notifier = notify.NewRedisNotifier(redisClient)
		}
	}
	middleware.InitRedis(redisClient)

	settingsRepo := repository.NewSettingsRepository(dbPool)
	provider := settings.NewProvider(settingsRepo)
	engine := levels.NewEngine(provider)
	resolver := catalog.NewResolver(settingsRepo)
	giftService := service.NewGiftService(dbPool, resolver, provider, engine, notifier)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub(redisClient)
	go hub.Run(hubCtx)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(dbPool, giftService, resolver, provider, engine)
	httpServer.RegisterRoutes(r, h, hub, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
