package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeEventRepo struct {
	mu         sync.Mutex
	events     map[string]domain.Event
	insertErr  error
	disableErr error
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]domain.Event)}
	for _, e := range events {
		r.events[e.EventID] = e
	}
	return r
}

func (r *fakeEventRepo) Insert(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.events[event.EventID]; ok {
		return fmt.Errorf("event id %s already exists: %w", event.EventID, domain.ErrStorage)
	}
	r.events[event.EventID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, eventID string) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrRecordNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) Disable(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disableErr != nil {
		return r.disableErr
	}
	event, ok := r.events[eventID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	event.Status = domain.StatusDisabled
	r.events[eventID] = event
	return nil
}

func (r *fakeEventRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakePhotoRepo struct {
	mu        sync.Mutex
	photos    []domain.Photo
	insertErr error
}

func (r *fakePhotoRepo) Insert(ctx context.Context, photo domain.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.photos = append(r.photos, photo)
	return nil
}

func (r *fakePhotoRepo) CountGuest(ctx context.Context, eventID, uploaderIP string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.photos {
		if p.EventID == eventID && p.UploadType == domain.UploadGuest && p.UploaderIP == uploaderIP {
			n++
		}
	}
	return n, nil
}

func (r *fakePhotoRepo) FindPreloaded(ctx context.Context, eventID string) ([]domain.Photo, error) {
	return r.findByType(eventID, domain.UploadPreloaded, false), nil
}

func (r *fakePhotoRepo) FindApprovedGuest(ctx context.Context, eventID string) ([]domain.Photo, error) {
	return r.findByType(eventID, domain.UploadGuest, true), nil
}

func (r *fakePhotoRepo) findByType(eventID string, t domain.UploadType, approvedOnly bool) []domain.Photo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Photo, 0)
	for _, p := range r.photos {
		if p.EventID == eventID && p.UploadType == t && (!approvedOnly || p.Approved) {
			out = append(out, p)
		}
	}
	// Newest first, matching the sort the durable store applies.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

func (r *fakePhotoRepo) all() []domain.Photo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Photo(nil), r.photos...)
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads int
	err     error
}

func (s *fakeStorage) Upload(ctx context.Context, image []byte, namespace string) (domain.ImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.ImageRef{}, s.err
	}
	s.uploads++
	id := fmt.Sprintf("%s/img-%d", namespace, s.uploads)
	return domain.ImageRef{
		StorageID: id,
		URL:       "https://images.example/" + id,
	}, nil
}

type fakeFiles struct {
	err error
}

func (f *fakeFiles) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("bytes:" + fileID), nil
}

var errBoom = errors.New("boom")
