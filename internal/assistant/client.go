package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultBaseURL is the Gemini generative-language endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	maxOutputTokens = 200
	temperature     = 0.7
)

var tracer = otel.Tracer("github.com/example/afrimarket/internal/assistant")

// Client calls Gemini's generateContent endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(30 * time.Second).
			SetHeader("Content-Type", "application/json"),
		apiKey: apiKey,
		model:  model,
	}
}

// Generate sends prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "assistant.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", c.model),
		attribute.Int("ai.prompt_length", len(prompt)),
	)

	if c.apiKey == "" {
		span.SetStatus(codes.Error, ErrNotConfigured.Error())
		return "", ErrNotConfigured
	}

	body := GenerateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	var out GenerateResponse
	var apiErr ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/{model}:generateContent")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if resp.IsError() {
		e := newAPIError(resp.StatusCode(), apiErr.Error.Message)
		log.Printf("[Assistant] Gemini API error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
		span.RecordError(e)
		span.SetStatus(codes.Error, e.Error())
		return "", e
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		span.RecordError(ErrEmptyResponse)
		return "", ErrEmptyResponse
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		span.RecordError(ErrEmptyResponse)
		return "", ErrEmptyResponse
	}

	span.SetAttributes(
		attribute.Int("ai.total_tokens", out.UsageMetadata.TotalTokenCount),
		attribute.Int("ai.response_length", len(text)),
	)
	return text, nil
}
