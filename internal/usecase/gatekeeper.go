package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/keylock"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/prometheus"
)

// Gatekeeper admits or rejects guest photo submissions. Admission checks
// run in a fixed order and the first failure wins: event exists, event is
// active, service type allows uploads, uploader is under quota. The quota
// check and the insert that follows are serialized per (event, uploader)
// key, so two concurrent submissions from one uploader cannot both pass
// the count while only one slot remains.
type Gatekeeper struct {
	events  EventRepository
	photos  PhotoRepository
	storage ObjectStorage
	locks   *keylock.KeyLock
	log     *slog.Logger
}

func NewGatekeeper(events EventRepository, photos PhotoRepository, storage ObjectStorage,
	log *slog.Logger) *Gatekeeper {
	return &Gatekeeper{
		events:  events,
		photos:  photos,
		storage: storage,
		locks:   keylock.New(),
		log:     log,
	}
}

func (g *Gatekeeper) Submit(ctx context.Context, eventID, uploaderIP, userAgent string,
	image []byte) (domain.Photo, error) {
	const op = "Gatekeeper.Submit"

	unlock := g.locks.Lock(eventID + "|" + uploaderIP)
	defer unlock()

	event, err := g.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			prometheus.GuestUploads.WithLabelValues("not_found").Inc()
			return domain.Photo{}, domain.ErrRecordNotFound
		}
		prometheus.GuestUploads.WithLabelValues("error").Inc()
		return domain.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	if event.Status != domain.StatusActive || event.ServiceType == domain.ServiceViewAlbum {
		prometheus.GuestUploads.WithLabelValues("disabled").Inc()
		return domain.Photo{}, domain.ErrUploadsDisabled
	}

	count, err := g.photos.CountGuest(ctx, eventID, uploaderIP)
	if err != nil {
		prometheus.GuestUploads.WithLabelValues("error").Inc()
		return domain.Photo{}, fmt.Errorf("%s: %w", op, err)
	}
	if count >= int64(event.UploadLimit) {
		prometheus.GuestUploads.WithLabelValues("quota").Inc()
		return domain.Photo{}, domain.ErrQuotaExceeded
	}

	ref, err := g.storage.Upload(ctx, image, nsGuests+"/"+eventID)
	if err != nil {
		prometheus.GuestUploads.WithLabelValues("storage_error").Inc()
		prometheus.StorageUploads.WithLabelValues("guest", "error").Inc()
		return domain.Photo{}, fmt.Errorf("%s: %w", op, err)
	}
	prometheus.StorageUploads.WithLabelValues("guest", "ok").Inc()

	photo := domain.Photo{
		EventID:    eventID,
		Image:      ref,
		UploadType: domain.UploadGuest,
		UploaderIP: uploaderIP,
		UserAgent:  userAgent,
		Approved:   true,
		UploadedAt: time.Now().UTC(),
	}
	if err := g.photos.Insert(ctx, photo); err != nil {
		prometheus.GuestUploads.WithLabelValues("error").Inc()
		return domain.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	prometheus.GuestUploads.WithLabelValues("accepted").Inc()
	g.log.InfoContext(ctx, "guest photo accepted",
		"eventID", eventID,
		"uploaderIP", uploaderIP,
		"count", count+1,
		"limit", event.UploadLimit,
	)
	return photo, nil
}
