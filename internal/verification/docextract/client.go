// Package docextract sends ID document images to a vision capable model and
// parses the structured fields it returns.
package docextract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fastkyc/internal/account"
)

// Extractor pulls structured fields out of a document image.
type Extractor interface {
	Extract(ctx context.Context, imageJPEG []byte) (account.DocumentFields, error)
}

// extractionPrompt is the fixed instruction sent alongside the image. The key
// names must match account.DocumentFields' JSON tags.
const extractionPrompt = `Please process this image and output the following in JSON:

idNumber (string)
name (string)
birthdate (string)
sex (string)
address (string)
electronicReplicaOfID (boolean)
paperReplicaOfID (boolean)
pictureIsClear (boolean)
idImageIsTampered (boolean)
`

const maxResponseTokens = 300

// Client calls a chat-completions style vision endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

func NewClient(url, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		url:        url,
		apiKey:     apiKey,
		model:      model,
	}
}

// WithHTTPClient overrides the underlying HTTP client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type visionRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []message      `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Extract(ctx context.Context, imageJPEG []byte) (account.DocumentFields, error) {
	encoded := base64.StdEncoding.EncodeToString(imageJPEG)
	payload := visionRequest{
		Model:          c.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []message{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: extractionPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + encoded}},
			},
		}},
		MaxTokens: maxResponseTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return account.DocumentFields{}, fmt.Errorf("encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return account.DocumentFields{}, fmt.Errorf("build vision request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return account.DocumentFields{}, fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return account.DocumentFields{}, fmt.Errorf("vision endpoint returned status %d", resp.StatusCode)
	}

	var decoded visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return account.DocumentFields{}, fmt.Errorf("decode vision response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return account.DocumentFields{}, fmt.Errorf("vision response contained no choices")
	}

	// The message content is itself a JSON document with the extraction keys.
	var fields account.DocumentFields
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &fields); err != nil {
		return account.DocumentFields{}, fmt.Errorf("parse extracted fields: %w", err)
	}
	return fields, nil
}
