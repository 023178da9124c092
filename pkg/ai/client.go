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
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"resume-builder/internal/model"
	"resume-builder/pkg/ai/formatters"
)

var (
	// ErrProvider means the ai-service answered but not with usable content.
	ErrProvider    = errors.New("content provider error")
	ErrUnknownKind = errors.New("unknown content kind")
)

// Client calls the internal ai-service chat endpoint.
type Client struct {
	baseURL  string
	http     *http.Client
	language string
	log      zerolog.Logger

	attempts    int
	baseBackoff time.Duration
}

type Option func(*Client)

// WithLanguage sets the output language of generated content.
func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

// WithRetry overrides the default of 3 attempts starting at 1s.
func WithRetry(attempts int, base time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.baseBackoff = base
	}
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		http:        &http.Client{Timeout: timeout},
		log:         log.With().Str("component", "ai_client").Logger(),
		attempts:    3,
		baseBackoff: time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	if c.attempts < 1 {
		c.attempts = 1
	}
	return c
}

type chatRequest struct {
	Agent string     `json:"agent"`
	Input string     `json:"input"`
	Files []chatFile `json:"files,omitempty"`
}

type chatFile struct {
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Data      string `json:"data"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// GenerateContent produces the text for one section kind: experience,
// projects, summary or custom. List kinds come back as an HTML list.
func (c *Client) GenerateContent(ctx context.Context, kind string, input any) (string, error) {
	f, ok := formatters.For(kind, c.language)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	fields, err := asMap(input)
	if err != nil {
		return "", err
	}

	out, err := c.chat(ctx, chatRequest{Agent: "auto", Input: f.Prompt(fields)})
	if err != nil {
		return "", err
	}
	content := f.Format(out)
	if content == "" {
		return "", fmt.Errorf("%w: empty %s content", ErrProvider, kind)
	}
	return content, nil
}

const pingAnswer = "1"

// Ping checks that the ai-service is reachable and answers a trivial
// prompt. Any failure is reported as ErrProvider.
func (c *Client) Ping(ctx context.Context) error {
	out, err := c.chat(ctx, chatRequest{Agent: "auto", Input: fmt.Sprintf("Respond with %q", pingAnswer)})
	if err != nil {
		if errors.Is(err, ErrProvider) || ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if got := strings.Trim(strings.TrimSpace(out), `"'.`); got != pingAnswer {
		return fmt.Errorf("%w: unexpected answer %q", ErrProvider, out)
	}
	return nil
}

const parseInstructions = `You will receive a resume document. Extract its content into ONE JSON object that conforms to the JSON Schema below.
Do not invent information. Leave fields you cannot find empty. Return ONLY the JSON object, no commentary, no markdown, no code fences.

JSON-SCHEMA:
`

// ParseDocument asks the ai-service to extract resume data from a binary
// document.
func (c *Client) ParseDocument(ctx context.Context, name, mediaType string, data []byte) (*model.ResumeData, error) {
	req := chatRequest{
		Agent: "auto",
		Input: parseInstructions + string(model.Schema()),
		Files: []chatFile{{Name: name, MediaType: mediaType, Data: base64.StdEncoding.EncodeToString(data)}},
	}
	out, err := c.chat(ctx, req)
	if err != nil {
		return nil, err
	}

	d := model.Default()
	if err := formatters.ExtractJSON(out, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return d, nil
}

// chat posts one request with retries and returns the model output.
// Transport failures and 5xx answers are retried; anything else fails
// immediately.
func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	c.log.Debug().Str("url", c.baseURL+"/v1/chat").Int("bytes", len(body)).Msg("ai request")

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.baseBackoff
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.Reset()

	var (
		respBytes []byte
		status    int
		lastErr   error
	)
	for attempt := 1; ; attempt++ {
		respBytes, status, lastErr = c.post(ctx, body)
		if lastErr == nil && status < 500 {
			break
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("%w: ai-service returned status %d", ErrProvider, status)
		}
		if attempt >= c.attempts {
			return "", lastErr
		}
		wait := exp.NextBackOff()
		c.log.Warn().Err(lastErr).Int("attempt", attempt).Dur("backoff", wait).Msg("ai request failed, retrying")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.log.Debug().Int("status", status).Int("bytes", len(respBytes)).Msg("ai response")
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: ai-service returned status %d", ErrProvider, status)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return chatResp.Output, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return b, resp.StatusCode, nil
}

// asMap accepts a map or any JSON-encodable struct.
func asMap(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case string:
		return map[string]any{"text": v}, nil
	}
	b, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("content input must be an object: %w", err)
	}
	return out, nil
}
