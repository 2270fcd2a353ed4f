// Package jimeng implements the remote image backend for the Volcengine Ark
// images API (Doubao-Seedream), which speaks the OpenAI images/generations
// dialect with the inference endpoint id standing in for the model name.
package jimeng

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

// ProviderName is the stable display name for this backend; it keeps real
// output distinguishable from the placeholder provider's.
const ProviderName = "Jimeng (Ark Seedream)"

const (
	defaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	defaultSize    = "1920x1920"

	// The Ark endpoint serves one image per request, so multi-image calls
	// fan out; this caps the fan-out per Generate call.
	maxConcurrentRequests = 4
)

// Generator produces images through the Ark API.
type Generator struct {
	apiKey     string
	endpointID string
	baseURL    string
	size       string
	client     *openai.Client
}

// Option customizes a Generator.
type Option func(*Generator)

// WithBaseURL points the client at another Ark-compatible endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(g *Generator) { g.baseURL = url }
}

// WithSize overrides the generated image size ("WIDTHxHEIGHT").
func WithSize(size string) Option {
	return func(g *Generator) { g.size = size }
}

// New builds a Generator. Both the API key and the inference endpoint id
// (ep-xxxxxxxx) are required for the backend to report itself configured.
func New(apiKey, endpointID string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:     apiKey,
		endpointID: endpointID,
		baseURL:    defaultBaseURL,
		size:       defaultSize,
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

// Configured reports whether both the API key and the endpoint id are present.
func (g *Generator) Configured() bool { return g.apiKey != "" && g.endpointID != "" }

// Generate produces req.Count images for req.Prompt, one remote request per
// image, preserving order. The first failing request cancels the rest.
func (g *Generator) Generate(ctx context.Context, req types.ImageRequest) (*types.ImageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image request: %w", err)
	}

	log.Debug().
		Str("component", "jimeng").
		Int("count", req.Count).
		Msg("requesting image generation")

	refs := make([]types.ImageRef, req.Count)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentRequests)
	for i := 0; i < req.Count; i++ {
		eg.Go(func() error {
			resp, err := g.client.CreateImage(egCtx, openai.ImageRequest{
				Model:  g.endpointID,
				Prompt: req.Prompt,
				N:      1,
				Size:   g.size,
			})
			if err != nil {
				return classifyRemoteError(err)
			}
			if len(resp.Data) == 0 || resp.Data[0].URL == "" {
				return &provider.Error{
					Kind:     provider.KindInvalidResponse,
					Provider: ProviderName,
					Message:  "image response carried no URL",
				}
			}
			refs[i] = types.ImageRef{URL: resp.Data[0].URL}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &types.ImageResult{Refs: refs, Provider: ProviderName}, nil
}

// classifyRemoteError maps transport and API failures onto the provider taxonomy.
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
			Message:  fmt.Sprintf("image API returned status %d", apiErr.HTTPStatusCode),
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
			Message:  fmt.Sprintf("image request failed with status %d", reqErr.HTTPStatusCode),
			Cause:    err,
		}
	}

	return &provider.Error{
		Kind:     provider.KindRemoteFailure,
		Provider: ProviderName,
		Message:  "image request failed",
		Cause:    err,
	}
}
