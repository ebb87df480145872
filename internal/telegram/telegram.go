// Package telegram delivers report texts to a Telegram chat via the Bot
// API. It owns transport concerns the formatter must not know about:
// 4096-character message chunking and send retries.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/damiri/vetwatch/internal/logger"
	"github.com/damiri/vetwatch/internal/metrics"
	"github.com/damiri/vetwatch/internal/retry"
)

// Telegram rejects messages above 4096 characters; stay under with margin
// for the chunk to end on a clean line.
const maxMessageRunes = 4000

// Notifier sends messages to one chat.
type Notifier struct {
	token  string
	chatID string
	client *http.Client
}

// New creates a notifier for the given bot token and chat.
func New(token, chatID string) *Notifier {
	return &Notifier{
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers one logical message, splitting it into chunks when it
// exceeds the transport limit. Each chunk is retried with backoff.
func (n *Notifier) Send(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text, maxMessageRunes) {
		err := retry.Do(ctx, retry.Policy{
			Attempts:    3,
			BaseDelay:   2 * time.Second,
			Exponential: true,
		}, func() error {
			return n.sendOnce(ctx, chunk)
		})
		if err != nil {
			return fmt.Errorf("can't send message: %v", err)
		}
		metrics.MessagesSent.Inc()
	}
	return nil
}

func (n *Notifier) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.token)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}

// splitMessage breaks text into chunks of at most limit runes, preferring
// line boundaries so a report never splits mid-entry.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, line := range strings.Split(text, "\n") {
		lineLen := len([]rune(line)) + 1
		if currentLen > 0 && currentLen+lineLen > limit {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
			currentLen = 0
		}
		// A single oversized line is split hard; it cannot fit anywhere.
		for len([]rune(line)) > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			lineLen = len([]rune(line)) + 1
		}
		current.WriteString(line)
		current.WriteString("\n")
		currentLen += lineLen
	}
	if currentLen > 0 {
		chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
	}
	return chunks
}
