package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"gifting_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateSetting persists an engine settings key and force-reloads the
// cached snapshots so the change applies to the next gift immediately.
func (h *Handler) UpdateSetting(c *gin.Context) {
	actorID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64*1024))
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	key := c.Param("key")
	if err := h.SettingsAdmin.Update(c.Request.Context(), actorID, key, json.RawMessage(body)); err != nil {
		if errors.Is(err, service.ErrUnknownSettingsKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown settings key"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "key": key})
}

// GetSetting returns the raw stored value for a key; null means the
// hard-coded defaults are in effect.
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := h.SettingsAdmin.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSettingsKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown settings key"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": json.RawMessage(value)})
}

// AuditLog returns the newest audit entries.
func (h *Handler) AuditLog(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	entries, err := h.AuditRepo.GetRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
