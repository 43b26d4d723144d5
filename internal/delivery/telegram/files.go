package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Files downloads message attachments from the Telegram file API. It backs
// the engine's image ingestion.
type Files struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

func NewFiles(api *tgbotapi.BotAPI) *Files {
	return &Files{
		api: api,
		client: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

func (f *Files) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	const op = "telegram.Files.Fetch"

	fileURL, err := f.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve file: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: download failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: bad status %d", op, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
