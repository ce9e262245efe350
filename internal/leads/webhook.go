package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WebhookSubmitter posts each lead as JSON to an HTTP endpoint.
type WebhookSubmitter struct {
	url    string
	client *http.Client
}

// NewWebhookSubmitter validates rawURL and creates a submitter with the
// given request timeout (10s when zero).
func NewWebhookSubmitter(rawURL string, timeout time.Duration) (*WebhookSubmitter, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid webhook URL %q", rawURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookSubmitter{url: u.String(), client: &http.Client{Timeout: timeout}}, nil
}

// Submit implements Submitter. Any non-2xx status is an error.
func (w *WebhookSubmitter) Submit(ctx context.Context, lead Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post lead %s: %w", lead.ID, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post lead %s: unexpected status %s", lead.ID, resp.Status)
	}
	return nil
}
