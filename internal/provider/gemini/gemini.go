// Package gemini implements the second text rewriting backend, built on the
// Google Gemini API. It is registered without credentials by default, so a
// stock deployment reports it unconfigured and the orchestrator skips it; it
// becomes live the moment a caller supplies an API key.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mizuha/rednote-remix/internal/prompts"
	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

// ProviderName is the stable display name for this backend.
const ProviderName = "Gemini"

const defaultModel = "gemini-1.5-flash"

// Generator rewrites note content through the Gemini API.
type Generator struct {
	apiKey string
	model  string
}

// New builds a Generator. An empty key yields an unconfigured generator.
func New(apiKey string) *Generator {
	return &Generator{apiKey: apiKey, model: defaultModel}
}

// Name returns the provider display name.
func (g *Generator) Name() string { return ProviderName }

// Configured reports whether an API key is present.
func (g *Generator) Configured() bool { return g.apiKey != "" }

// Generate rewrites the request content in the requested style. The client is
// created per call and closed before returning; credentials are caller-scoped
// and never cached beyond the Generator itself.
func (g *Generator) Generate(ctx context.Context, req types.RewriteRequest) (*types.RewriteResult, error) {
	if !g.Configured() {
		return nil, provider.NotConfigured(ProviderName)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rewrite request: %w", err)
	}

	instruction, err := prompts.StyleInstruction(req.Style, req.CustomInstruction)
	if err != nil {
		return nil, fmt.Errorf("invalid rewrite request: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, &provider.Error{
			Kind:     provider.KindRemoteFailure,
			Provider: ProviderName,
			Message:  "failed to create Gemini client",
			Cause:    err,
		}
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"

	prompt := prompts.Format(prompts.MustGet("rewrite.json", "rewrite-system"), map[string]string{
		"StyleInstruction": instruction,
	}) + "\n\n" + prompts.Format(prompts.MustGet("rewrite.json", "rewrite-user"), map[string]string{
		"Title":   req.OriginalTitle,
		"Content": req.OriginalContent,
	})

	log.Debug().Str("component", "gemini").Str("style", string(req.Style)).Msg("requesting rewrite")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, classifyRemoteError(err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}
	return provider.ParseRewritePayload(ProviderName, text)
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &provider.Error{
			Kind:     provider.KindInvalidResponse,
			Provider: ProviderName,
			Message:  "no candidates in response",
		}
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &provider.Error{
			Kind:     provider.KindInvalidResponse,
			Provider: ProviderName,
			Message:  "no text parts in response",
		}
	}
	return strings.Join(parts, ""), nil
}

// classifyRemoteError maps Google API failures onto the provider taxonomy.
func classifyRemoteError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &provider.Error{
			Kind:     provider.KindRateLimited,
			Provider: ProviderName,
			Message:  "generation quota exhausted",
			Cause:    err,
		}
	}
	return &provider.Error{
		Kind:     provider.KindRemoteFailure,
		Provider: ProviderName,
		Message:  "generation request failed",
		Cause:    err,
	}
}
