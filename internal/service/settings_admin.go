package service

import (
	"context"
	"encoding/json"
	"errors"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/levels"
	"gifting_platform/internal/repository"
	"gifting_platform/internal/settings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnknownSettingsKey = errors.New("unknown settings key")

// SettingsAdminService applies admin settings writes and immediately
// force-reloads the cached providers so the next dependent calculation sees
// the new values.
type SettingsAdminService struct {
	repo     *repository.SettingsRepository
	provider *settings.Provider
	engine   *levels.Engine
	audit    *AuditService
}

func NewSettingsAdminService(db *pgxpool.Pool, provider *settings.Provider, engine *levels.Engine) *SettingsAdminService {
	return &SettingsAdminService{
		repo:     repository.NewSettingsRepository(db),
		provider: provider,
		engine:   engine,
		audit:    NewAuditService(db),
	}
}

// Update validates that value is JSON, persists it and reloads the caches.
// Only the keys this engine consumes are accepted.
func (s *SettingsAdminService) Update(ctx context.Context, actorID int64, key string, value json.RawMessage) error {
	switch key {
	case settings.KeyGiftEconomy, settings.KeyLevelSettings, settings.KeyGiftCatalog:
	default:
		return ErrUnknownSettingsKey
	}
	if !json.Valid(value) {
		return errors.New("settings value must be valid JSON")
	}

	if err := s.repo.Set(ctx, key, value); err != nil {
		return err
	}

	// level_settings feeds the threshold table; reload both the typed
	// snapshots and the derived table
	if key == settings.KeyLevelSettings {
		s.engine.Reload(ctx)
	} else {
		s.provider.Reload(ctx)
	}

	action := domain.AuditActionSettingsUpdate
	if key == settings.KeyGiftCatalog {
		action = domain.AuditActionCatalogOverride
	}
	s.audit.Log(ctx, actorID, action, domain.AuditCategoryAdmin, map[string]interface{}{
		"key": key,
	})
	return nil
}

// Get returns the raw stored value for an accepted key, which may be nil
// when the defaults are in effect.
func (s *SettingsAdminService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	switch key {
	case settings.KeyGiftEconomy, settings.KeyLevelSettings, settings.KeyGiftCatalog:
	default:
		return nil, ErrUnknownSettingsKey
	}
	return s.repo.Get(ctx, key)
}
