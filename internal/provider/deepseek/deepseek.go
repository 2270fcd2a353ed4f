// Package deepseek implements the text rewriting provider backed by
// DeepSeek's OpenAI-compatible chat completion API.
package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mizuha/rednote-remix/internal/prompts"
	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

const (
	// ProviderName is the stable display name callers use to tell this
	// backend's output apart from mock output.
	ProviderName = "DeepSeek"

	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"

	// rewrites benefit from some temperature; the JSON envelope is enforced
	// by the response format, not by determinism.
	temperature = 0.8
	maxTokens   = 2000
)

// Generator rewrites note content through the DeepSeek chat API.
type Generator struct {
	apiKey  string
	baseURL string
	model   string
	client  *openai.Client
}

// Option customizes a Generator.
type Option func(*Generator)

// WithBaseURL points the client at another OpenAI-compatible endpoint.
// Used by tests and by self-hosted gateways.
func WithBaseURL(url string) Option {
	return func(g *Generator) { g.baseURL = url }
}

// WithModel overrides the chat model name.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// New builds a Generator for the given API key. An empty key yields an
// unconfigured generator; callers check Configured before Generate.
func New(apiKey string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = g.baseURL
	g.client = openai.NewClientWithConfig(cfg)
	return g
}

// Name returns the provider display name.
func (g *Generator) Name() string { return ProviderName }

// Configured reports whether an API key is present.
func (g *Generator) Configured() bool { return g.apiKey != "" }

// Generate rewrites the request content in the requested style. The remote
// response must be a JSON object with new_title/new_content; anything else is
// surfaced as an InvalidResponse provider error. A rewrite that happens to
// match the original text is returned as-is, not treated as a failure.
func (g *Generator) Generate(ctx context.Context, req types.RewriteRequest) (*types.RewriteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rewrite request: %w", err)
	}

	instruction, err := prompts.StyleInstruction(req.Style, req.CustomInstruction)
	if err != nil {
		return nil, fmt.Errorf("invalid rewrite request: %w", err)
	}

	systemPrompt := prompts.Format(prompts.MustGet("rewrite.json", "rewrite-system"), map[string]string{
		"StyleInstruction": instruction,
	})
	userPrompt := prompts.Format(prompts.MustGet("rewrite.json", "rewrite-user"), map[string]string{
		"Title":   req.OriginalTitle,
		"Content": req.OriginalContent,
	})

	log.Debug().Str("component", "deepseek").Str("style", string(req.Style)).Msg("requesting rewrite")

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, classifyRemoteError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &provider.Error{
			Kind:     provider.KindInvalidResponse,
			Provider: ProviderName,
			Message:  "no choices in chat response",
		}
	}

	return provider.ParseRewritePayload(ProviderName, resp.Choices[0].Message.Content)
}

// classifyRemoteError maps transport and API failures onto the provider error
// taxonomy so nothing openai-specific leaks to callers.
func classifyRemoteError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := provider.KindRemoteFailure
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			kind = provider.KindRateLimited
		}
		return &provider.Error{
			Kind:     kind,
			Provider: ProviderName,
			Message:  fmt.Sprintf("chat API returned status %d", apiErr.HTTPStatusCode),
			Cause:    err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		kind := provider.KindRemoteFailure
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			kind = provider.KindRateLimited
		}
		return &provider.Error{
			Kind:     kind,
			Provider: ProviderName,
			Message:  fmt.Sprintf("chat request failed with status %d", reqErr.HTTPStatusCode),
			Cause:    err,
		}
	}

	return &provider.Error{
		Kind:     provider.KindRemoteFailure,
		Provider: ProviderName,
		Message:  "chat request failed",
		Cause:    err,
	}
}
