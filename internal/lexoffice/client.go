// Package lexoffice is a minimal client for the lexoffice invoices API.
// The pipeline only needs one call: create an invoice, report success or
// failure. Failures are not retried here; the caller decides what a failed
// submission means for the run.
package lexoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/cardmarket-lexoffice/internal/invoice"
	"fjacquet/cardmarket-lexoffice/internal/logging"
)

// DefaultBaseURL is the production lexoffice API endpoint.
const DefaultBaseURL = "https://api.lexoffice.io"

const invoicesPath = "/v1/invoices"

// Client submits invoice payloads to lexoffice.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client authenticating with the given API key.
func NewClient(apiKey string, logger logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Submit creates an invoice from the payload. lexoffice answers 201 Created
// on success; any other status, and any transport failure, is an error.
func (c *Client) Submit(ctx context.Context, payload *invoice.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding invoice payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invoicesPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building invoice request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending invoice: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("invoice creation failed: %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}

	c.logger.Info("Invoice created in lexoffice",
		logging.F(logging.FieldStatus, resp.StatusCode))
	return nil
}
