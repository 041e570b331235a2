package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel             = "google/gemini-2.0-flash-001"
	AppTitle                 = "Link1t Portfolio Generator"

	extractionTemperature = 0.1
	extractionMaxTokens   = 4000
)

// ErrEmptyResponse means the model answered without any message text
var ErrEmptyResponse = errors.New("no response from AI model")

// UpstreamError is a non-2xx answer from the completion service
type UpstreamError struct {
	Status  int
	Message string // error.message from the response body, may be empty
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion service returned status %d", e.Status)
	}
	return fmt.Sprintf("completion service returned status %d: %s", e.Status, e.Message)
}

// OpenRouterClient calls an OpenAI-compatible chat completions endpoint
// that accepts file parts (OpenRouter).
type OpenRouterClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	HTTP    *http.Client
}

func NewOpenRouterClient(baseURL, apiKey, model, referer string) *OpenRouterClient {
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if referer == "" {
		referer = "http://localhost:3000"
	}
	return &OpenRouterClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Referer: referer,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *OpenRouterClient) Configured() bool {
	return c != nil && c.APIKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string    `json:"type"`
	Text string    `json:"text,omitempty"`
	File *filePart `json:"file,omitempty"`
}

type filePart struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the prompt and the document in one user message and returns
// the first choice's text. No retries.
func (c *OpenRouterClient) Extract(ctx context.Context, prompt, filename, mimeType string, data []byte) (string, error) {
	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "file", File: &filePart{
					Filename: filename,
					FileData: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
				}},
			},
		}},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.Referer)
	req.Header.Set("X-Title", AppTitle)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return "", &UpstreamError{Status: resp.StatusCode, Message: errResp.Error.Message}
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
