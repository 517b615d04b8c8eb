// Package cargo talks to the outreach delivery API that ingests approved
// messages.
package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/max-knopp/intellio/internal/entity"
)

type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IngestRecord posts one finalized record. The raw response status and body
// are always returned so the caller can audit the attempt; err is non-nil
// when the request failed or the API answered outside 2xx.
func (c *Client) IngestRecord(ctx context.Context, record entity.OutreachRecord) (int, string, error) {
	if c.apiToken == "" {
		return 0, "", fmt.Errorf("outreach API token not configured")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return 0, "", fmt.Errorf("failed to encode record: %w", err)
	}

	url := fmt.Sprintf("%s?token=%s", c.baseURL, c.apiToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("outreach API unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, string(body), fmt.Errorf("outreach API returned %d", resp.StatusCode)
	}

	return resp.StatusCode, string(body), nil
}
