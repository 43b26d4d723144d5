package telegram

import (
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Yeabkal66/BOTH-BACKEND/configs"
)

type Bot struct {
	*tgbotapi.BotAPI
	engine ConversationEngine
	log    *slog.Logger
}

func NewAPI(cfg *configs.Config) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: cfg.TG.ConnectionTimeout,
	}
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, engine ConversationEngine, log *slog.Logger) *Bot {
	return &Bot{api, engine, log}
}

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) {
	if len(text) > 4000 {
		text = text[:4000] + "..."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.Send(msg); err != nil {
		b.log.ErrorContext(ctx, "failed to send message",
			"chatID", chatID,
			"error", err,
		)
	}
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(ctx, update)
	}
}

func (b *Bot) Stop() {
	b.StopReceivingUpdates()
}
