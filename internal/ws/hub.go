package ws

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"gifting_platform/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// Hub fans user events out to connected websocket clients. Events arrive on
// per-user redis channels published by the notifier; Deliver is also callable
// directly so single-process deployments work without redis.
type Hub struct {
	redis *redis.Client

	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		redis:   redisClient,
		clients: make(map[int64]map[*Client]struct{}),
	}
}

// Run consumes the redis event channels until ctx is cancelled. Without a
// redis client it returns immediately and the hub serves local deliveries
// only.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}

	sub := h.redis.PSubscribe(ctx, "events:user:*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			userID, err := userIDFromChannel(msg.Channel)
			if err != nil {
				logger.Warn("ws: unparseable event channel", "channel", msg.Channel)
				continue
			}
			h.Deliver(userID, []byte(msg.Payload))
		}
	}
}

func userIDFromChannel(channel string) (int64, error) {
	idx := strings.LastIndexByte(channel, ':')
	return strconv.ParseInt(channel[idx+1:], 10, 64)
}

// Deliver pushes a payload to every open connection of a user. Slow clients
// are dropped rather than blocking the hub.
func (h *Hub) Deliver(userID int64, payload []byte) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- payload:
		default:
			logger.Warn("ws: dropping slow client", "user_id", userID)
			h.Unregister(c)
			c.Close()
		}
	}
}

// Register attaches a client connection to its user.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
}

// Unregister detaches a client; safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.UserID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, c.UserID)
		}
	}
}
