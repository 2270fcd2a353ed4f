// Package provider defines the contracts every text and image generation
// backend must satisfy, the shared error taxonomy, and the name-keyed
// registry the orchestrator selects backends from.
package provider

import (
	"context"

	"github.com/mizuha/rednote-remix/internal/types"
)

// TextGenerator is implemented by every text rewriting backend.
type TextGenerator interface {
	// Name returns the stable human-readable provider name.
	Name() string
	// Configured reports whether every credential the backend requires is
	// present. Callers must check this before Generate.
	Configured() bool
	// Generate rewrites the request's content in the requested style.
	Generate(ctx context.Context, req types.RewriteRequest) (*types.RewriteResult, error)
}

// ImageGenerator is implemented by every image generation backend.
type ImageGenerator interface {
	// Name returns the stable human-readable provider name.
	Name() string
	// Configured reports whether every credential the backend requires is
	// present. Callers must check this before Generate.
	Configured() bool
	// Generate produces req.Count images for req.Prompt, in order.
	Generate(ctx context.Context, req types.ImageRequest) (*types.ImageResult, error)
}
