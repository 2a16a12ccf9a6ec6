// Package webhook delivers broadcast alerts to an external chat channel.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/leaders-st/helpdesk/internal/shared/config"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

const defaultTimeout = 10 * time.Second

// Broadcaster pushes a plain text alert to the shared channel. Ok reports
// whether the channel accepted the message; callers gate state changes on it.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (ok bool)
}

// SlackClient posts messages to a Slack-compatible incoming webhook.
type SlackClient struct {
	url    string
	client *http.Client
	logger logger.Interface
}

func NewSlackClient(cfg *config.WebhookConfig, log logger.Interface) *SlackClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SlackClient{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
		logger: log.Named("webhook"),
	}
}

type payload struct {
	Text string `json:"text"`
}

// Broadcast sends text as a webhook payload. Failures are logged and reported
// as ok=false, never as a panic or a retry loop: delivery retries happen on
// the next scan cycle.
func (c *SlackClient) Broadcast(ctx context.Context, text string) bool {
	if c.url == "" {
		c.logger.Debugw("webhook URL not configured, skipping broadcast")
		return false
	}

	body, err := json.Marshal(payload{Text: text})
	if err != nil {
		c.logger.Errorw("failed to encode webhook payload", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.logger.Errorw("failed to build webhook request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Errorw("webhook delivery failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		c.logger.Errorw("webhook rejected message",
			"status", resp.StatusCode,
			"response", string(snippet),
		)
		return false
	}

	return true
}
