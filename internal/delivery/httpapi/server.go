package httpapi

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/usecase"
)

// EventQuerier serves the guest-facing event page.
type EventQuerier interface {
	EventPage(ctx context.Context, eventID string) (usecase.EventPage, error)
}

// UploadGate decides whether a guest submission is admitted.
type UploadGate interface {
	Submit(ctx context.Context, eventID, uploaderIP, userAgent string,
		image []byte) (domain.Photo, error)
}

type Server struct {
	app   *fiber.App
	query EventQuerier
	gate  UploadGate
	log   *slog.Logger
}

func NewServer(query EventQuerier, gate UploadGate, log *slog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			BodyLimit: 20 * 1024 * 1024,
		}),
		query: query,
		gate:  gate,
		log:   log,
	}

	s.app.Get("/health", s.handleHealth)
	s.app.Get("/api/events/:eventId", s.handleGetEvent)
	s.app.Post("/api/upload/:eventId", s.handleUpload)

	return s
}

func (s *Server) Listen(port string) error {
	return s.app.Listen(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
