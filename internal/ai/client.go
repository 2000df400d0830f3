package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// ErrDisabled is returned by Generate when the client was built without
// an API key. Callers treat it like any other generation failure, so a
// keyless deployment degrades to sentinel output instead of crashing.
var ErrDisabled = errors.New("text generation disabled: no API key configured")

const maxAttempts = 3

// Retry waits per attempt. Rate limits get a longer ladder than plain
// server errors; both stay short because Generate runs inside request
// handling, not a batch job.
var (
	rateLimitWaits   = []time.Duration{2 * time.Second, 5 * time.Second}
	serverErrorWaits = []time.Duration{time.Second, 3 * time.Second}
)

// Client calls the OpenAI Responses API to turn prompts into text. One
// instance is shared by every service that needs generation.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a generation client for the given model. An empty
// apiKey yields a disabled client whose Generate always returns
// ErrDisabled.
func NewClient(apiKey, model string) *Client {
	if apiKey == "" {
		return &Client{model: model}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &client, model: model}
}

func (generator *Client) Enabled() bool { return generator.client != nil }

func (generator *Client) Model() string { return generator.model }

// Generate sends one system+user prompt pair and returns the model's
// text output. Transient failures (rate limits, 5xx) are retried a few
// times before the error is surfaced.
func (generator *Client) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	if generator.client == nil {
		return "", ErrDisabled
	}

	params := responses.ResponseNewParams{
		Model:           generator.model,
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Temperature:     openai.Float(temperature),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(userPrompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	response, err := generator.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(response.OutputText())
	if text == "" {
		return "", errors.New("model returned empty output")
	}
	return text, nil
}

func (generator *Client) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		response, err := generator.client.Responses.New(ctx, params)
		if err == nil {
			return response, nil
		}
		lastErr = err

		var wait time.Duration
		switch {
		case attempt == maxAttempts-1:
			return nil, err
		case isRateLimitError(err):
			wait = rateLimitWaits[attempt]
		case isServerError(err):
			wait = serverErrorWaits[attempt]
		default:
			return nil, err
		}

		log.Printf("ai: generation attempt %d/%d failed, retrying in %s: %v", attempt+1, maxAttempts, wait, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// The SDK does not expose typed transport errors for these cases, so
// classification matches on the message text.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "429") ||
		strings.Contains(message, "rate limit") ||
		strings.Contains(message, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "500") ||
		strings.Contains(message, "502") ||
		strings.Contains(message, "503") ||
		strings.Contains(message, "internal server error") ||
		strings.Contains(message, "server_error")
}
