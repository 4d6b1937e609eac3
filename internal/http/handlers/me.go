package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's balances and level progress.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	info := h.Levels.LevelFor(ctx, user.XP)
	badges, _ := h.ProgressRepo.GetBadges(ctx, userID)

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"coins":    user.Coins,
		"diamonds": user.Diamonds,
		"xp":       user.XP,
		"level":    user.Level,
		"progress": info,
		"badges":   badges,
	})
}

// MyHistory returns the authenticated user's recent ledger entries.
func (h *Handler) MyHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.LedgerRepo.GetByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
