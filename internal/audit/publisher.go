package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"chefwho/internal/models"
	"chefwho/internal/redis"
)

// RedisPublisher broadcasts stored entries as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) PublishChatLog(ctx context.Context, entry models.ChatLogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal chat log: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("publish chat log: %w", err)
	}
	return nil
}
