package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrGenerationFailed covers every way a story request can fail: transport
// errors, non-2xx answers, malformed or empty payloads.
var ErrGenerationFailed = errors.New("story generation failed")

// Generator turns a prompt into story text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SessionHeader carries the board session id to the proxy.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// WithSession tags ctx with the board session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Story string `json:"story"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// HTTPGenerator posts prompts to the story proxy.
type HTTPGenerator struct {
	Endpoint   string
	httpClient *http.Client
}

func NewHTTPGenerator(endpoint string) *HTTPGenerator {
	return &HTTPGenerator{
		Endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := sessionFrom(ctx); id != "" {
		req.Header.Set(SessionHeader, id)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrGenerationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(data)
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && (apiErr.Details != "" || apiErr.Error != "") {
			detail = apiErr.Error
			if apiErr.Details != "" {
				detail = apiErr.Details
			}
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, detail)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrGenerationFailed, err)
	}
	if out.Story == "" {
		return "", fmt.Errorf("%w: empty story", ErrGenerationFailed)
	}
	return out.Story, nil
}

// OfflineGenerator stands in for the proxy when none is configured or
// found. It answers after Delay with a summary built from the prompt.
type OfflineGenerator struct {
	Delay time.Duration
}

func (g OfflineGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
	}
	log.Printf("[STORY] Offline mode, answering locally")
	return summarize("Local story", descriptionsFromPrompt(prompt),
		"(The full story is written once the board is connected to a story service.)"), nil
}
