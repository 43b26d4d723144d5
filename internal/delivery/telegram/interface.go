package telegram

import "context"

// ConversationEngine is the per-chat state machine the bot feeds inbound
// messages into. Every method returns the reply to send back to the chat.
type ConversationEngine interface {
	Start(ctx context.Context, chatID int64) string
	StartDisable(ctx context.Context, chatID int64) string
	Cancel(ctx context.Context, chatID int64) string
	HandleText(ctx context.Context, chatID int64, text string) string
	HandleImage(ctx context.Context, chatID int64, fileID string) string
	Complete(ctx context.Context, chatID int64) string
}
