// Package emailcheck validates email deliverability through an external
// provider and applies the intake acceptance policy to the result.
package emailcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Verifier checks a candidate address. The controller keeps the interface
// small so tests can stub quickly.
type Verifier interface {
	Verify(ctx context.Context, email string) (Result, error)
}

// BoolField mirrors the provider's {"value": bool, "text": string} envelope.
type BoolField struct {
	Value bool   `json:"value"`
	Text  string `json:"text"`
}

// Result is the subset of the provider response the policy consumes.
type Result struct {
	Email          string    `json:"email"`
	Deliverability string    `json:"deliverability"`
	IsValidFormat  BoolField `json:"is_valid_format"`
	IsMXFound      BoolField `json:"is_mx_found"`
	IsSMTPValid    BoolField `json:"is_smtp_valid"`
	IsDisposable   BoolField `json:"is_disposable_email"`
}

// DeliverabilityUndeliverable is the provider enum value that rejects an
// address outright.
const DeliverabilityUndeliverable = "UNDELIVERABLE"

// Client calls the deliverability provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// WithHTTPClient overrides the underlying HTTP client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) Verify(ctx context.Context, email string) (Result, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("email", email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build email check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("email check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("email check returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode email check response: %w", err)
	}
	return result, nil
}
