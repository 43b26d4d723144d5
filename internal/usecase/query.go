package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

// EventPage is everything a guest-facing page needs: the event, its photos
// newest first, and whether the upload form should be shown.
type EventPage struct {
	Event           domain.Event   `json:"event"`
	PreloadedPhotos []domain.Photo `json:"preloaded_photos"`
	GuestPhotos     []domain.Photo `json:"guest_photos"`
	UploadEnabled   bool           `json:"upload_enabled"`
}

type Query struct {
	events EventRepository
	photos PhotoRepository
}

func NewQuery(events EventRepository, photos PhotoRepository) *Query {
	return &Query{
		events: events,
		photos: photos,
	}
}

func (q *Query) EventPage(ctx context.Context, eventID string) (EventPage, error) {
	const op = "Query.EventPage"

	event, err := q.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return EventPage{}, err
		}
		return EventPage{}, fmt.Errorf("%s: %w", op, err)
	}

	preloaded, err := q.photos.FindPreloaded(ctx, eventID)
	if err != nil {
		return EventPage{}, fmt.Errorf("%s: %w", op, err)
	}
	guests, err := q.photos.FindApprovedGuest(ctx, eventID)
	if err != nil {
		return EventPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return EventPage{
		Event:           event,
		PreloadedPhotos: preloaded,
		GuestPhotos:     guests,
		UploadEnabled:   event.UploadEnabled(),
	}, nil
}
