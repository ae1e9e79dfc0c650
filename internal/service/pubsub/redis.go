package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

const (
	channelPrefix = "items:"
)

// ChannelName returns the Redis channel carrying schema's item events.
func ChannelName(schema string) string {
	return channelPrefix + schema
}

type RedisPubSub struct {
	client        *redis.Client
	logger        *logger.Logger
	subscriptions map[*redis.PubSub]string
	subscriberMu  sync.Mutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:        client,
		logger:        logger,
		subscriptions: make(map[*redis.PubSub]string),
	}
}

// Publish sends event to the channel of the schema it happened in.
func (ps *RedisPubSub) Publish(ctx context.Context, event domain.ItemEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal item event: %w", err)
	}

	channel := ChannelName(event.Schema)
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe delivers schema's item events to callback until ctx is done.
// Each call holds its own Redis subscription, so one connection never sees
// another tenant's channel.
func (ps *RedisPubSub) Subscribe(ctx context.Context, schema string, callback func(domain.ItemEvent)) error {
	channel := ChannelName(schema)

	sub := ps.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("failed to subscribe to Redis channel %s: %w", channel, err)
	}

	ps.subscriberMu.Lock()
	ps.subscriptions[sub] = channel
	ps.subscriberMu.Unlock()

	go func() {
		defer ps.release(sub)

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event domain.ItemEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Error("Failed to unmarshal item event", err, zap.String("channel", channel))
					continue
				}
				// a publisher bug must not leak foreign events onto this channel
				if event.Schema != schema {
					continue
				}
				callback(event)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Debug("Subscribed to tenant channel", zap.String("channel", channel))
	return nil
}

func (ps *RedisPubSub) release(sub *redis.PubSub) {
	ps.subscriberMu.Lock()
	channel, ok := ps.subscriptions[sub]
	delete(ps.subscriptions, sub)
	ps.subscriberMu.Unlock()

	if ok {
		sub.Close()
		ps.logger.Debug("Closed subscription", zap.String("channel", channel))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for sub, channel := range ps.subscriptions {
		sub.Close()
		delete(ps.subscriptions, sub)
		ps.logger.Infof("Closed subscription for tenant channel: %s", channel)
	}
}
