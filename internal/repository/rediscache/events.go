package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Yeabkal66/BOTH-BACKEND/configs"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

// EventCache keeps hot event records in Redis so the upload path does not
// hit Mongo on every guest submission.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg *configs.Config) *EventCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RD.Host,
		Username:     cfg.RD.User,
		Password:     cfg.RD.Password,
		DB:           cfg.RD.DB,
		MaxRetries:   cfg.RD.MaxRetries,
		DialTimeout:  cfg.RD.DialTimeout,
		ReadTimeout:  cfg.RD.ReadTimeout,
		WriteTimeout: cfg.RD.WriteTimeout,
	})
	return &EventCache{client: client, ttl: cfg.RD.EventTTL}
}

func key(eventID string) string {
	return "event:" + eventID
}

func (c *EventCache) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	const op = "EventCache.GetEvent"
	raw, err := c.client.Get(ctx, key(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Event{}, domain.ErrRecordNotFound
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	var event domain.Event
	if err := bson.Unmarshal(raw, &event); err != nil {
		return domain.Event{}, fmt.Errorf("%s: corrupt cache entry: %w", op, err)
	}
	return event, nil
}

func (c *EventCache) SetEvent(ctx context.Context, event domain.Event) error {
	const op = "EventCache.SetEvent"
	raw, err := bson.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.client.Set(ctx, key(event.EventID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *EventCache) DropEvent(ctx context.Context, eventID string) error {
	const op = "EventCache.DropEvent"
	if err := c.client.Del(ctx, key(eventID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
