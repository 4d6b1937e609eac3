package handlers

import (
	"gifting_platform/internal/catalog"
	"gifting_platform/internal/levels"
	"gifting_platform/internal/repository"
	"gifting_platform/internal/service"
	"gifting_platform/internal/settings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB            *pgxpool.Pool
	Catalog       *catalog.Resolver
	Settings      *settings.Provider
	Levels        *levels.Engine
	GiftService   *service.GiftService
	SettingsAdmin *service.SettingsAdminService
	AuditService  *service.AuditService

	UserRepo     *repository.UserRepository
	LedgerRepo   *repository.LedgerRepository
	GiftTxRepo   *repository.GiftTxRepository
	ProgressRepo *repository.ProgressRepository
	AuditRepo    *repository.AuditRepository
}

func NewHandler(db *pgxpool.Pool, giftService *service.GiftService, resolver *catalog.Resolver, provider *settings.Provider, engine *levels.Engine) *Handler {
	return &Handler{
		DB:            db,
		Catalog:       resolver,
		Settings:      provider,
		Levels:        engine,
		GiftService:   giftService,
		SettingsAdmin: service.NewSettingsAdminService(db, provider, engine),
		AuditService:  service.NewAuditService(db),
		UserRepo:      repository.NewUserRepository(db),
		LedgerRepo:    repository.NewLedgerRepository(db),
		GiftTxRepo:    repository.NewGiftTxRepository(db),
		ProgressRepo:  repository.NewProgressRepository(db),
		AuditRepo:     repository.NewAuditRepository(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}
