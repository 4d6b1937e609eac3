package notify

import (
	"context"
	"encoding/json"
	"strconv"

	"gifting_platform/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// Notifier delivers level-up events to the receiving user. Delivery is
// best-effort: callers log failures and never roll back the gift.
type Notifier interface {
	LevelUp(ctx context.Context, event domain.LevelUpEvent) error
}

// UserChannel returns the redis pub/sub channel for one user's events.
func UserChannel(userID int64) string {
	return "events:user:" + strconv.FormatInt(userID, 10)
}

// RedisNotifier publishes events on per-user redis channels; the websocket
// hub subscribes and pushes them to connected clients.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) LevelUp(ctx context.Context, event domain.LevelUpEvent) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":      "level_up",
		"user_id":   event.UserID,
		"level":     event.Level,
		"source":    event.Source,
		"gift_code": event.GiftCode,
		"quantity":  event.Quantity,
	})
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, UserChannel(event.UserID), payload).Err()
}

// NoopNotifier is used when redis is not configured.
type NoopNotifier struct{}

func (NoopNotifier) LevelUp(context.Context, domain.LevelUpEvent) error { return nil }
