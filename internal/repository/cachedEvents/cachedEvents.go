package cachedEvents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/prometheus"
)

type EventRepository interface {
	Insert(ctx context.Context, event domain.Event) error
	FindByID(ctx context.Context, eventID string) (domain.Event, error)
	Disable(ctx context.Context, eventID string) error
}

type EventCache interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	SetEvent(ctx context.Context, event domain.Event) error
	DropEvent(ctx context.Context, eventID string) error
}

// CachedEvents is a cache-aside layer over the durable event repository.
// Reads try the cache first; writes go straight through, and Disable drops
// the cached copy so the gate never admits against a stale status.
type CachedEvents struct {
	repo  EventRepository
	cache EventCache
	log   *slog.Logger
}

func NewCachedEvents(repo EventRepository, cache EventCache, log *slog.Logger) *CachedEvents {
	return &CachedEvents{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedEvents) Insert(ctx context.Context, event domain.Event) error {
	return r.repo.Insert(ctx, event)
}

func (r *CachedEvents) FindByID(ctx context.Context, eventID string) (domain.Event, error) {
	const op = "cachedEvents.FindByID"
	event, err := r.cache.GetEvent(ctx, eventID)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return event, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"eventID", eventID,
			"error", err,
		)
	}
	prometheus.CacheOperations.WithLabelValues("miss").Inc()
	event, err = r.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Event{}, err
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		// The fill outlives the request; fiber recycles its request
		// context the moment the handler returns, so the goroutine must
		// not retain it.
		ctx := context.WithoutCancel(ctx)
		if err := r.cache.SetEvent(ctx, event); err != nil {
			r.log.ErrorContext(ctx, "failed to cache event",
				"eventID", eventID,
				"error", err,
			)
		}
	}()
	return event, nil
}

func (r *CachedEvents) Disable(ctx context.Context, eventID string) error {
	if err := r.repo.Disable(ctx, eventID); err != nil {
		return err
	}
	if err := r.cache.DropEvent(ctx, eventID); err != nil {
		r.log.WarnContext(ctx, "failed to drop cached event",
			"eventID", eventID,
			"error", err,
		)
	}
	return nil
}
