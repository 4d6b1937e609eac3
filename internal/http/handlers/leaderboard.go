package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TopReceivers returns the users with the most earned diamonds.
func (h *Handler) TopReceivers(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rows, err := h.DB.Query(c.Request.Context(),
		`SELECT id, username, diamonds, level
		 FROM users
		 ORDER BY diamonds DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	defer rows.Close()

	var top []gin.H
	for rows.Next() {
		var (
			id, diamonds int64
			username     string
			level        int
		)
		if err := rows.Scan(&id, &username, &diamonds, &level); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
			return
		}
		top = append(top, gin.H{
			"id":       id,
			"username": username,
			"diamonds": diamonds,
			"level":    level,
		})
	}
	c.JSON(http.StatusOK, gin.H{"top": top})
}
