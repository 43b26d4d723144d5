package httpapi

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleGetEvent(c *fiber.Ctx) error {
	eventID := c.Params("eventId")

	page, err := s.query.EventPage(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "event not found",
			})
		}
		s.log.Error("event page query failed",
			"eventID", eventID,
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
		})
	}

	return c.JSON(page)
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	eventID := c.Params("eventId")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "image file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read image file",
		})
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read image file",
		})
	}

	photo, err := s.gate.Submit(c.Context(), eventID, c.IP(), c.Get(fiber.HeaderUserAgent), image)
	if err != nil {
		return s.uploadError(c, eventID, err)
	}

	return c.JSON(photo)
}

func (s *Server) uploadError(c *fiber.Ctx, eventID string, err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "event not found",
		})
	case errors.Is(err, domain.ErrUploadsDisabled):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uploads are disabled for this event",
		})
	case errors.Is(err, domain.ErrQuotaExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "upload limit reached for this event",
		})
	default:
		s.log.Error("guest upload failed",
			"eventID", eventID,
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
		})
	}
}
