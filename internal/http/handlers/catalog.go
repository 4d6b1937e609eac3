package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GiftCatalog returns the effective gift catalog (built-ins merged with
// admin overrides), cheapest first.
func (h *Handler) GiftCatalog(c *gin.Context) {
	defs := h.Catalog.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"gifts": defs})
}

// LevelTable returns the current cumulative XP thresholds for display.
func (h *Handler) LevelTable(c *gin.Context) {
	table := h.Levels.Table(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"max_level":  table.MaxLevel,
		"thresholds": table.Thresholds[1:],
	})
}
