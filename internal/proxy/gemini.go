package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"StoryCuts/internal/config"
)

// UpstreamError is a non-2xx answer from the text-generation service.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// Upstream generates story text for a prompt.
type Upstream interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// text returns the first candidate's first part, or "" when any level is missing.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// GeminiClient calls the generateContent endpoint with the server-side key.
type GeminiClient struct {
	BaseURL     string
	Version     string
	Model       string
	APIKey      string
	Temperature float64
	httpClient  *http.Client
}

func NewGeminiClient(cfg *config.ProxyConfig) *GeminiClient {
	return &GeminiClient{
		BaseURL:     strings.TrimRight(cfg.GeminiBaseURL, "/"),
		Version:     cfg.GeminiVersion,
		Model:       cfg.GeminiModel,
		APIKey:      cfg.GeminiAPIKey,
		Temperature: cfg.Temperature,
		httpClient:  &http.Client{},
	}
}

func (g *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent", g.BaseURL, g.Version, g.Model)
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var payload geminiRequest
	payload.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	payload.GenerationConfig.Temperature = g.Temperature

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(data)}
	}

	var out geminiResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return out.text(), nil
}
