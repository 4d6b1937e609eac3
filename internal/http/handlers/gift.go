package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gifting_platform/internal/service"

	"github.com/gin-gonic/gin"
)

type SendGiftRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	StreamID   *int64 `json:"stream_id"`
	GiftCode   string `json:"gift_code" binding:"required"`
	Quantity   int64  `json:"quantity" binding:"required"`
	Message    string `json:"message"`
	Anonymous  bool   `json:"anonymous"`
	Public     *bool  `json:"public"`
}

// SendGift runs the gift workflow for the authenticated sender.
func (h *Handler) SendGift(c *gin.Context) {
	senderID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SendGiftRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	result, err := h.GiftService.SendGift(c.Request.Context(), service.SendGiftInput{
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		StreamID:       req.StreamID,
		GiftCode:       req.GiftCode,
		Quantity:       req.Quantity,
		Message:        req.Message,
		Anonymous:      req.Anonymous,
		Public:         public,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		status, msg := giftErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	resp := gin.H{
		"transaction": result.Transaction,
		"replayed":    result.Replayed,
	}
	if !result.Replayed {
		resp["sender_coins"] = result.SenderCoins
	}
	if result.LevelUp != nil {
		resp["level_up"] = result.LevelUp
	}
	c.JSON(status, resp)
}

// giftErrorStatus maps processor errors to HTTP responses. Validation
// failures and insufficient funds are client errors; processing failures are
// retryable server errors.
func giftErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrReceiverNotFound):
		return http.StatusNotFound, "receiver not found"
	case errors.Is(err, service.ErrStreamNotFound):
		return http.StatusNotFound, "stream not found"
	case errors.Is(err, service.ErrInvalidGiftDefinition):
		return http.StatusBadRequest, "invalid gift"
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest, "invalid quantity"
	case errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient funds"
	default:
		return http.StatusInternalServerError, "gift processing failed"
	}
}

// ReceivedGifts returns recent public gifts for a user.
func (h *Handler) ReceivedGifts(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad user id"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	gifts, err := h.GiftTxRepo.GetByReceiver(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gifts"})
		return
	}

	// anonymous sends hide the sender from the public feed
	out := make([]gin.H, 0, len(gifts))
	for _, g := range gifts {
		item := gin.H{
			"id":                g.ID,
			"gift_code":         g.GiftCode,
			"quantity":          g.Quantity,
			"total_coins":       g.TotalCoins,
			"receiver_diamonds": g.ReceiverDiamonds,
			"message":           g.Message,
			"created_at":        g.CreatedAt,
		}
		if !g.Anonymous {
			item["sender_id"] = g.SenderID
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"gifts": out})
}
