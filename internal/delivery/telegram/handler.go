package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Yeabkal66/BOTH-BACKEND/pkg/prometheus"
)

const (
	chatIDKey  = "chat_id"
	commandKey = "command"
	successKey = "success"
	errorKey   = "error"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	switch {
	case update.Message.IsCommand():
		b.handleCommand(ctx, chatID, update.Message.Command())

	case len(update.Message.Photo) > 0:
		b.handlePhoto(ctx, chatID, update.Message.Photo)

	case update.Message.Document != nil &&
		strings.HasPrefix(update.Message.Document.MimeType, "image/"):
		b.handleImageFile(ctx, chatID, update.Message.Document.FileID)

	default:
		b.handleText(ctx, chatID, strings.TrimSpace(update.Message.Text))
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	b.log.Info("command received", chatIDKey, chatID, commandKey, command)

	switch command {
	case "start", "newevent":
		b.SendMessage(ctx, chatID, b.engine.Start(ctx, chatID))
	case "done":
		b.SendMessage(ctx, chatID, b.engine.Complete(ctx, chatID))
	case "disable":
		b.SendMessage(ctx, chatID, b.engine.StartDisable(ctx, chatID))
	case "cancel":
		b.SendMessage(ctx, chatID, b.engine.Cancel(ctx, chatID))
	case "help":
		b.handleHelp(ctx, chatID)
	default:
		status = errorKey
		b.handleUnknown(ctx, chatID)
	}
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	b.SendMessage(ctx, chatID, "This bot creates photo events your guests can contribute to.\n"+
		"/start - create a new event\n"+
		"/done - publish the event you are creating\n"+
		"/disable - stop guest uploads for an event\n"+
		"/cancel - discard the event you are creating")
}

func (b *Bot) handleUnknown(ctx context.Context, chatID int64) {
	b.SendMessage(ctx, chatID, "Unknown command. Send /help to see what I can do.")
}

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues("text").Observe(time.Since(startTime).Seconds())
	}()

	b.SendMessage(ctx, chatID, b.engine.HandleText(ctx, chatID, text))
}

// handlePhoto forwards the highest-resolution variant of an inbound photo
// to the engine.
func (b *Bot) handlePhoto(ctx context.Context, chatID int64, sizes []tgbotapi.PhotoSize) {
	largest := sizes[0]
	for _, size := range sizes[1:] {
		if size.Width*size.Height > largest.Width*largest.Height {
			largest = size
		}
	}
	b.handleImageFile(ctx, chatID, largest.FileID)
}

func (b *Bot) handleImageFile(ctx context.Context, chatID int64, fileID string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues("image").Observe(time.Since(startTime).Seconds())
	}()

	b.SendMessage(ctx, chatID, b.engine.HandleImage(ctx, chatID, fileID))
}
