// Package adversemedia screens a person against public web content through a
// browse automation service and interprets the free text verdict.
package adversemedia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Verdict is the tri-state outcome of an adverse media search. Indeterminate
// covers responses that contain neither a clear positive nor a clear negative.
type Verdict string

const (
	VerdictFound         Verdict = "found"
	VerdictNotFound      Verdict = "not_found"
	VerdictIndeterminate Verdict = "indeterminate"
)

// Searcher runs an adverse media search for a named subject.
type Searcher interface {
	Search(ctx context.Context, name, address string) (Verdict, error)
}

// Config carries the browse service settings.
type Config struct {
	URL           string
	APIKey        string
	Endpoint      string
	MaxIterations int
}

// Client calls the browse automation service.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		cfg:        cfg,
	}
}

// WithHTTPClient overrides the underlying HTTP client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type inventoryEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

type browseRequest struct {
	BrowseConfig   browseConfig   `json:"browse_config"`
	ProviderConfig providerConfig `json:"provider_config"`
	ModelConfig    modelConfig    `json:"model_config"`
	ResponseType   map[string]any `json:"response_type"`
	Inventory      []inventoryEntry `json:"inventory"`
	Headless       bool           `json:"headless"`
	HDRConfig      hdrConfig      `json:"hdr_config"`
}

type browseConfig struct {
	StartURL      string   `json:"startUrl"`
	Objective     []string `json:"objective"`
	MaxIterations int      `json:"maxIterations"`
}

type providerConfig struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
}

type modelConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type hdrConfig struct {
	APIKey   string `json:"apikey"`
	Endpoint string `json:"endpoint"`
}

type browseResponse struct {
	ObjectiveComplete *struct {
		Result string `json:"result"`
	} `json:"objectiveComplete"`
}

func (c *Client) Search(ctx context.Context, name, address string) (Verdict, error) {
	objective := fmt.Sprintf(
		"Find information about %s who lives around %s. If no evidence is found, just say No, if some evidence is found, just say Yes and provide a brief summary.",
		name, address)

	payload := browseRequest{
		BrowseConfig: browseConfig{
			StartURL:      "https://google.com",
			Objective:     []string{objective},
			MaxIterations: c.cfg.MaxIterations,
		},
		ProviderConfig: providerConfig{Provider: "openai", APIKey: c.cfg.APIKey},
		ModelConfig:    modelConfig{Model: "gpt-4", Temperature: 0},
		ResponseType: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"required":    true,
					"description": "A brief summary of the findings",
				},
			},
		},
		Inventory: []inventoryEntry{
			{Name: "PersonName", Value: name, Type: "string"},
			{Name: "PersonAddress", Value: address, Type: "string"},
		},
		Headless:  true,
		HDRConfig: hdrConfig{APIKey: c.cfg.APIKey, Endpoint: c.cfg.Endpoint},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode browse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build browse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("browse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("browse service returned status %d", resp.StatusCode)
	}

	var decoded browseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode browse response: %w", err)
	}
	if decoded.ObjectiveComplete == nil {
		return VerdictIndeterminate, nil
	}
	return ParseVerdict(decoded.ObjectiveComplete.Result), nil
}

// ParseVerdict interprets the free text result by substring match. A response
// containing neither "Yes" nor "No" is indeterminate, never a clean result.
func ParseVerdict(result string) Verdict {
	switch {
	case strings.Contains(result, "Yes"):
		return VerdictFound
	case strings.Contains(result, "No"):
		return VerdictNotFound
	default:
		return VerdictIndeterminate
	}
}
