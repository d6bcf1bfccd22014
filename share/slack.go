package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fresco/shopping"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Slack posts shopping lists to an incoming webhook.
type Slack struct {
	webhookURL string
	httpClient doer
}

func NewSlack(webhookURL string, httpClient doer) (*Slack, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("slack webhook URL is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	return &Slack{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}, nil
}

// Share renders the shopping list under title and posts it to channel.
func (s *Slack) Share(ctx context.Context, channel, title string, lines shopping.Lines, shopped map[string]bool) error {
	var body strings.Builder
	fmt.Fprintf(&body, "*%s*\n", title)
	if err := shopping.Render(&body, lines, shopped); err != nil {
		return fmt.Errorf("failed to render shopping list: %w", err)
	}

	return s.PostMessage(ctx, channel, body.String())
}

func (s *Slack) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
