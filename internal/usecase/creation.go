package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/eventid"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/keylock"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/prometheus"
)

// Creation drives the guided event-creation conversation. Every inbound
// message for a chat is serialized through a per-chat lock, so exactly one
// step transition happens per message regardless of how the transport
// delivers updates. Invalid input re-prompts and never advances the step.
type Creation struct {
	sessions      SessionRepository
	events        EventRepository
	photos        PhotoRepository
	storage       ObjectStorage
	files         FileFetcher
	publicBaseURL string
	locks         *keylock.KeyLock
	log           *slog.Logger
}

func NewCreation(sessions SessionRepository, events EventRepository, photos PhotoRepository,
	storage ObjectStorage, files FileFetcher, publicBaseURL string, log *slog.Logger) *Creation {
	return &Creation{
		sessions:      sessions,
		events:        events,
		photos:        photos,
		storage:       storage,
		files:         files,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		locks:         keylock.New(),
		log:           log,
	}
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Start begins a fresh creation conversation, silently discarding any
// session the chat already had. The draft is seeded with a generated event
// id and the initiating chat as creator.
func (e *Creation) Start(ctx context.Context, chatID int64) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	e.sessions.Put(ctx, chatID, &domain.SessionState{
		Step: domain.StepWelcomeText,
		Draft: domain.Event{
			EventID:     eventid.New(),
			ServiceType: domain.ServiceBoth,
			UploadLimit: domain.UploadLimitDefault,
			CreatedBy:   chatID,
			Status:      domain.StatusActive,
		},
	})
	e.trackSessions(ctx)
	return "Let's create a new photo event!\n" +
		"Send the welcome text your guests will see (up to 100 characters)."
}

// StartDisable enters the single-step disable flow, replacing any other
// session for the chat.
func (e *Creation) StartDisable(ctx context.Context, chatID int64) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	e.sessions.Put(ctx, chatID, &domain.SessionState{
		Step: domain.StepDisableEventID,
	})
	e.trackSessions(ctx)
	return "Send the ID of the event you want to disable."
}

func (e *Creation) Cancel(ctx context.Context, chatID int64) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	if e.sessions.Get(ctx, chatID) == nil {
		return "Nothing to cancel. Send /start to create a new event."
	}
	e.sessions.Reset(ctx, chatID)
	e.trackSessions(ctx)
	return "Event creation cancelled."
}

// HandleText advances the conversation with a text message. The switch is
// exhaustive over all steps; a chat without a session gets a usage hint.
func (e *Creation) HandleText(ctx context.Context, chatID int64, text string) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	state := e.sessions.Get(ctx, chatID)
	if state == nil {
		return "Send /start to create a new event."
	}
	text = strings.TrimSpace(text)

	switch state.Step {
	case domain.StepWelcomeText:
		if text == "" || len([]rune(text)) > domain.WelcomeTextMaxLen {
			return fmt.Sprintf("Welcome text must be between 1 and %d characters. Try again.",
				domain.WelcomeTextMaxLen)
		}
		state.Draft.WelcomeText = text
		state.Step = domain.StepDescription
		return fmt.Sprintf("Got it. Now send a short description (up to %d characters).",
			domain.DescriptionMaxLen)

	case domain.StepDescription:
		if text == "" || len([]rune(text)) > domain.DescriptionMaxLen {
			return fmt.Sprintf("Description must be between 1 and %d characters. Try again.",
				domain.DescriptionMaxLen)
		}
		state.Draft.Description = text
		state.Step = domain.StepBackgroundImage
		return "Now send a background image for your event page."

	case domain.StepBackgroundImage:
		return "Please send an image to use as the event background."

	case domain.StepServiceType:
		serviceType, ok := domain.ParseServiceType(strings.ToLower(text))
		if !ok {
			return "Unknown service type. Send one of: both, viewalbum, uploadpics."
		}
		state.Draft.ServiceType = serviceType
		state.Step = domain.StepUploadLimit
		return fmt.Sprintf("How many photos may each guest upload? Send a number from %d to %d.",
			domain.UploadLimitMin, domain.UploadLimitMax)

	case domain.StepUploadLimit:
		limit, err := strconv.Atoi(text)
		if err != nil || limit < domain.UploadLimitMin || limit > domain.UploadLimitMax {
			return fmt.Sprintf("Upload limit must be a number from %d to %d. Try again.",
				domain.UploadLimitMin, domain.UploadLimitMax)
		}
		state.Draft.UploadLimit = limit
		state.Step = domain.StepPreloadedPhotos
		return "Almost done! Send photos to preload into the album, then /done to publish.\n" +
			"You can also send /done right away for an empty album."

	case domain.StepPreloadedPhotos:
		return "Send a photo to preload, or /done to publish the event."

	case domain.StepDisableEventID:
		return e.disableEvent(ctx, chatID, text)
	}

	e.log.WarnContext(ctx, "session in unknown step",
		"chatID", chatID,
		"step", state.Step.String(),
		"correlationID", state.CorrelationID,
	)
	return "Something went wrong. Send /start to create a new event."
}

// HandleImage ingests an inbound image in the two image-accepting steps.
// A failed fetch or transfer is reported to the user and holds the step, so
// resending the image retries the whole ingestion.
func (e *Creation) HandleImage(ctx context.Context, chatID int64, fileID string) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	state := e.sessions.Get(ctx, chatID)
	if state == nil {
		return "Send /start to create a new event."
	}

	switch state.Step {
	case domain.StepBackgroundImage:
		ref, err := e.ingestImage(ctx, fileID, nsBackgrounds, "background")
		if err != nil {
			e.logIngestFailure(ctx, chatID, state, err)
			return "Couldn't save that image. Please send it again."
		}
		state.Draft.BackgroundImage = &ref
		state.Step = domain.StepServiceType
		return "Background saved. Choose a service type: both, viewalbum or uploadpics.\n" +
			"both - guests can view the album and upload photos\n" +
			"viewalbum - guests can only view the album\n" +
			"uploadpics - guests can only upload photos"

	case domain.StepPreloadedPhotos:
		ref, err := e.ingestImage(ctx, fileID, nsPreloaded+"/"+state.Draft.EventID, "preloaded")
		if err != nil {
			e.logIngestFailure(ctx, chatID, state, err)
			return "Couldn't save that photo. Please send it again."
		}
		state.PreloadedPhotos = append(state.PreloadedPhotos, ref)
		return fmt.Sprintf("Photo added (%d so far). Send more, or /done to publish.",
			len(state.PreloadedPhotos))
	}

	return "I wasn't expecting an image here. Send /done to publish, or /cancel to start over."
}

// Complete is the completion signal. It finalizes the event only from the
// preloaded-photos step and is a no-op anywhere else.
func (e *Creation) Complete(ctx context.Context, chatID int64) string {
	unlock := e.locks.Lock(chatKey(chatID))
	defer unlock()

	state := e.sessions.Get(ctx, chatID)
	if state == nil || state.Step != domain.StepPreloadedPhotos {
		return "Nothing to finish yet. Send /start to create a new event."
	}

	// The session is discarded whether finalization succeeds or not; the
	// draft is gone either way and the user starts over on failure.
	defer func() {
		e.sessions.Reset(ctx, chatID)
		e.trackSessions(ctx)
	}()

	now := time.Now().UTC()
	event := state.Draft
	event.CreatedAt = now

	if err := e.events.Insert(ctx, event); err != nil {
		e.log.ErrorContext(ctx, "event insert failed",
			"chatID", chatID,
			"eventID", event.EventID,
			"correlationID", state.CorrelationID,
			"error", err,
		)
		return "Couldn't publish the event. Please try again with /start."
	}
	prometheus.EventsCreated.Inc()

	for _, ref := range state.PreloadedPhotos {
		photo := domain.Photo{
			EventID:    event.EventID,
			Image:      ref,
			UploadType: domain.UploadPreloaded,
			Approved:   true,
			UploadedAt: now,
		}
		if err := e.photos.Insert(ctx, photo); err != nil {
			e.log.ErrorContext(ctx, "preloaded photo insert failed",
				"chatID", chatID,
				"eventID", event.EventID,
				"storageID", ref.StorageID,
				"error", err,
			)
		}
	}

	e.log.InfoContext(ctx, "event published",
		"chatID", chatID,
		"eventID", event.EventID,
		"preloadedPhotos", len(state.PreloadedPhotos),
	)
	return fmt.Sprintf("Your event is live!\n%s\nShare this link with your guests.",
		e.EventURL(event.EventID))
}

func (e *Creation) EventURL(eventID string) string {
	return e.publicBaseURL + "/event/" + eventID
}

func (e *Creation) disableEvent(ctx context.Context, chatID int64, eventID string) string {
	err := e.events.Disable(ctx, eventID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return "No event with that ID. Check the ID and try again."
	}
	if err != nil {
		e.log.ErrorContext(ctx, "event disable failed",
			"chatID", chatID,
			"eventID", eventID,
			"error", err,
		)
		return "Couldn't disable the event right now. Please try again."
	}

	e.sessions.Reset(ctx, chatID)
	e.trackSessions(ctx)
	return fmt.Sprintf("Event %s is now disabled. Guests can no longer upload photos.", eventID)
}

func (e *Creation) ingestImage(ctx context.Context, fileID, namespace, kind string) (domain.ImageRef, error) {
	const op = "Creation.ingestImage"

	image, err := e.files.Fetch(ctx, fileID)
	if err != nil {
		prometheus.StorageUploads.WithLabelValues(kind, "error").Inc()
		return domain.ImageRef{}, fmt.Errorf("%s: fetch failed: %w", op, err)
	}
	ref, err := e.storage.Upload(ctx, image, namespace)
	if err != nil {
		prometheus.StorageUploads.WithLabelValues(kind, "error").Inc()
		return domain.ImageRef{}, fmt.Errorf("%s: %w", op, err)
	}
	prometheus.StorageUploads.WithLabelValues(kind, "ok").Inc()
	return ref, nil
}

func (e *Creation) logIngestFailure(ctx context.Context, chatID int64, state *domain.SessionState, err error) {
	e.log.ErrorContext(ctx, "image ingestion failed",
		"chatID", chatID,
		"step", state.Step.String(),
		"correlationID", state.CorrelationID,
		"error", err,
	)
}

func (e *Creation) trackSessions(ctx context.Context) {
	prometheus.ActiveSessions.Set(float64(len(e.sessions.ActiveChats(ctx))))
}
