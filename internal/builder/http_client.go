package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"link1t-backend/internal/domain"
)

// APIError is an error body returned by the portfolio API
type APIError struct {
	Status       int      `json:"-"`
	Message      string   `json:"error"`
	Code         string   `json:"code"`
	ExistingSlug string   `json:"existingSlug,omitempty"`
	Details      []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.ExistingSlug != "" {
		return fmt.Sprintf("%s (%d %s, existing slug %q)", e.Message, e.Status, e.Code, e.ExistingSlug)
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

// HTTPClient talks to a running API with a bearer token
type HTTPClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		// résumé parsing waits on the model
		HTTP: &http.Client{Timeout: 90 * time.Second},
	}
}

type portfolioEnvelope struct {
	Portfolio *domain.PortfolioRecord `json:"portfolio"`
}

type saveBody struct {
	Slug string                `json:"slug"`
	Data *domain.PortfolioData `json:"data"`
}

type parseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPClient) GetOwn(ctx context.Context) (*domain.PortfolioRecord, error) {
	var out portfolioEnvelope
	if err := c.do(ctx, http.MethodGet, "/v1/portfolio", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Portfolio, nil
}

func (c *HTTPClient) Create(ctx context.Context, slug string, data *domain.PortfolioData) error {
	return c.save(ctx, http.MethodPost, slug, data)
}

func (c *HTTPClient) Update(ctx context.Context, slug string, data *domain.PortfolioData) error {
	return c.save(ctx, http.MethodPut, slug, data)
}

func (c *HTTPClient) save(ctx context.Context, method, slug string, data *domain.PortfolioData) error {
	body, err := json.Marshal(saveBody{Slug: slug, Data: data})
	if err != nil {
		return err
	}
	return c.do(ctx, method, "/v1/portfolio", bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) ParseResume(ctx context.Context, file *domain.ResumeFile) (*domain.ParsedResumeData, error) {
	if file == nil {
		return nil, errors.New("no file provided")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out parseEnvelope
	if err := c.do(ctx, http.MethodPost, "/v1/parse-resume", &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return decodeParsed(out.Data)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
