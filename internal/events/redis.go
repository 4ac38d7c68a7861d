package events

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const channelPrefix = "hunt:changes:"

// ChannelFor returns the Redis pub/sub channel carrying changes for a table
func ChannelFor(table string) string {
	return channelPrefix + table
}

// RedisBroker publishes and subscribes change events over Redis pub/sub,
// which gives cross-instance fan-out for free.
type RedisBroker struct {
	client   *redis.Client
	recorder Recorder
	logger   *zap.Logger
}

// NewRedisBroker creates a broker on top of an existing Redis client
func NewRedisBroker(client *redis.Client, recorder Recorder, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{
		client:   client,
		recorder: recorder,
		logger:   logger,
	}
}

// Publish sends the event to the table's channel. Errors are logged and
// swallowed; the write that triggered the event has already succeeded.
func (b *RedisBroker) Publish(ctx context.Context, event ChangeEvent) {
	if b.client == nil {
		return
	}

	if err := b.client.Publish(ctx, ChannelFor(event.Table), event.Encode()).Err(); err != nil {
		b.logger.Warn("Failed to publish change event",
			zap.String("table", event.Table),
			zap.String("action", event.Action),
			zap.Error(err),
		)
		return
	}

	if b.recorder != nil {
		b.recorder.IncrementChangeEventPublished(event.Table)
	}
}

// Subscribe opens one pub/sub stream covering the given tables. The returned
// handle feeds decoded events until Close is called or ctx is done.
func (b *RedisBroker) Subscribe(ctx context.Context, tables ...string) (Subscription, error) {
	if b.client == nil {
		return nil, fmt.Errorf("redis client not available")
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("at least one table required")
	}

	channels := make([]string, 0, len(tables))
	for _, table := range tables {
		channels = append(channels, ChannelFor(table))
	}

	pubsub := b.client.Subscribe(ctx, channels...)

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan ChangeEvent, 16),
	}
	go sub.pump(b.logger)

	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan ChangeEvent
}

func (s *redisSubscription) pump(logger *zap.Logger) {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		event, err := DecodeChangeEvent([]byte(msg.Payload))
		if err != nil {
			logger.Warn("Dropping malformed change event",
				zap.String("channel", msg.Channel),
				zap.Error(err),
			)
			continue
		}

		select {
		case s.events <- event:
		default:
			// Slow consumer: drop the hint. The next event or the periodic
			// refresh re-delivers the staleness signal.
		}
	}
}

func (s *redisSubscription) Events() <-chan ChangeEvent {
	return s.events
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
