// Package automation posts the daily lead summary to the no-code automation
// webhook.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SummaryPayload is the daily digest body: actionable lead counts by
// recency bucket.
type SummaryPayload struct {
	HotLeads        int    `json:"hot_leads"`
	WarmLeads       int    `json:"warm_leads"`
	TotalActionable int    `json:"total_actionable"`
	Timestamp       string `json:"timestamp"`
}

type Client struct {
	webhookURL string
	apiKey     string
	httpClient *http.Client
}

func NewClient(webhookURL, apiKey string) *Client {
	return &Client{
		webhookURL: webhookURL,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PostSummary delivers one digest and returns the webhook's response status.
func (c *Client) PostSummary(ctx context.Context, payload SummaryPayload) (int, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("digest webhook API key not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-make-apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("digest webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("digest webhook returned %d", resp.StatusCode)
	}

	return resp.StatusCode, nil
}
