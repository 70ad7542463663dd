package gemini

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

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNoAPIKey is returned when a Client is used without a configured key.
var ErrNoAPIKey = errors.New("gemini API key is not configured")

// CallOptions selects the model and request timeout for one call. The scan
// and grading flows carry different values, so options travel per call
// rather than living on the Client.
type CallOptions struct {
	Model   string
	Timeout time.Duration
}

// Client sends single synchronous generateContent requests carrying a text
// prompt and one inline image. There are no retries; any failure is
// reported to the caller, which treats the page as skipped.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a Client. The key may be empty; calls will then fail with
// ErrNoAPIKey so handlers can short-circuit before any upload work.
func New(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{},
		log:     log.With().Str("component", "gemini_client").Logger(),
	}
}

// NewWithBaseURL creates a Client pointed at a custom endpoint. Used by
// tests to stand in a fake server.
func NewWithBaseURL(apiKey, baseURL string, log zerolog.Logger) *Client {
	c := New(apiKey, log)
	c.baseURL = baseURL
	return c
}

// generateContent request/response wire types. Only the fields this service
// touches are modeled; the response text is expected at the fixed path
// candidates[0].content.parts[0].text.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generation_config"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt + image request and returns the raw response
// text. The context is bounded by opt.Timeout; image processing on the
// service side can take minutes, so callers configure this generously.
func (c *Client) Generate(ctx context.Context, prompt, mimeType string, image []byte, opt CallOptions) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	if opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.Timeout)
		defer cancel()
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, opt.Model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("model", opt.Model).
			Msg("Gemini returned non-success status")
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response has no candidate text")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
