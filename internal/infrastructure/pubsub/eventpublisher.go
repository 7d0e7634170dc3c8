// Package pubsub relays audit-trail records to off-ledger consumers over
// redis. Delivery is fire-and-forget: indexers that miss a publish catch up
// through the replay API.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/config"
	"iprights/internal/shared/logger"
)

const publishTimeout = 5 * time.Second

// EventPublisher pushes each appended audit record onto a redis channel.
// It attaches to the in-process event log as a subscriber, so publishing
// happens after the originating transaction has committed.
type EventPublisher struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

// NewEventPublisher connects to redis and returns a publisher
func NewEventPublisher(cfg *config.RedisConfig, log logger.Interface) (*EventPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &EventPublisher{
		client:  client,
		channel: cfg.Channel,
		logger:  log,
	}, nil
}

// Attach subscribes the publisher to the event log.
func (p *EventPublisher) Attach(log *events.Log) {
	log.Subscribe(func(rec events.Record) {
		p.publish(rec)
	})
}

func (p *EventPublisher) publish(rec events.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		p.logger.Errorw("failed to encode event", "type", rec.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warnw("failed to publish event",
			"channel", p.channel,
			"type", rec.Type,
			"sequence", rec.Sequence,
			"error", err)
		return
	}

	p.logger.Debugw("event published", "channel", p.channel, "type", rec.Type, "sequence", rec.Sequence)
}

// Close releases the redis connection
func (p *EventPublisher) Close() error {
	return p.client.Close()
}
