package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBridge fans deliveries out to every instance through a pub/sub channel.
// Each instance runs the bridge and hands received deliveries to its local hub.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  zerolog.Logger
}

// NewRedisBridge creates a bridge on channel.
func NewRedisBridge(client *redis.Client, channel string, hub *Hub, logger zerolog.Logger) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, hub: hub, logger: logger}
}

// Publish implements Publisher.
func (b *RedisBridge) Publish(ctx context.Context, d Delivery) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish delivery: %w", err)
	}
	return nil
}

// Run subscribes to the channel until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	b.logger.Info().Str("channel", b.channel).Msg("Subscribed to push channel")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var d Delivery
			if err := json.Unmarshal([]byte(msg.Payload), &d); err != nil {
				b.logger.Warn().Err(err).Msg("Dropping malformed delivery")
				continue
			}
			if err := b.hub.Publish(ctx, d); err != nil {
				return
			}
		}
	}
}
