package handlers

import (
	"net/http"
	"os"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Auth issues a token for an existing user, creating one on first login in
// dev mode. Real identity verification lives in the platform's auth gateway;
// this endpoint only covers local development and tests.
func (h *Handler) Auth(c *gin.Context) {
	if os.Getenv("DEV_MODE") != "true" {
		c.JSON(http.StatusForbidden, gin.H{"error": "auth is handled by the gateway"})
		return
	}

	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	var userID int64

	switch {
	case req.UserID != 0:
		exists, err := h.UserRepo.Exists(ctx, req.UserID)
		if err != nil || !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		userID = req.UserID
	case req.Username != "":
		u := &domain.User{Username: req.Username}
		if err := h.UserRepo.Create(ctx, u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		userID = u.ID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or username required"})
		return
	}

	token, err := service.GenerateJWT(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}
