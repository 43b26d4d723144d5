package usecase

import (
	"context"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

type EventRepository interface {
	Insert(ctx context.Context, event domain.Event) error
	FindByID(ctx context.Context, eventID string) (domain.Event, error)
	Disable(ctx context.Context, eventID string) error
}

type PhotoRepository interface {
	Insert(ctx context.Context, photo domain.Photo) error
	CountGuest(ctx context.Context, eventID, uploaderIP string) (int64, error)
	FindPreloaded(ctx context.Context, eventID string) ([]domain.Photo, error)
	FindApprovedGuest(ctx context.Context, eventID string) ([]domain.Photo, error)
}

type SessionRepository interface {
	Get(ctx context.Context, chatID int64) *domain.SessionState
	Put(ctx context.Context, chatID int64, state *domain.SessionState)
	Reset(ctx context.Context, chatID int64)
	ActiveChats(ctx context.Context) []int64
}

// ObjectStorage is the image host. Namespaces keep background, preloaded
// and guest images apart.
type ObjectStorage interface {
	Upload(ctx context.Context, image []byte, namespace string) (domain.ImageRef, error)
}

// FileFetcher retrieves the raw bytes of an inbound messenger image by its
// transport-side file id.
type FileFetcher interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

const (
	nsBackgrounds = "backgrounds"
	nsPreloaded   = "preloaded"
	nsGuests      = "guests"
)
