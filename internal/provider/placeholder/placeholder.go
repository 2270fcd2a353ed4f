// Package placeholder implements the default image backend: a no-network
// strategy returning deterministic placeholder references. It exists so the
// whole pipeline is exercisable without live credentials; its name keeps its
// output clearly distinguishable from any real backend's.
package placeholder

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/mizuha/rednote-remix/internal/types"
)

// ProviderName is the stable display name for this backend.
const ProviderName = "Placeholder"

const (
	imageWidth  = 1080
	imageHeight = 1440
)

// Generator produces deterministic placeholder image URLs.
type Generator struct{}

// New builds a Generator. It needs no credentials.
func New() *Generator { return &Generator{} }

// Name returns the provider display name.
func (g *Generator) Name() string { return ProviderName }

// Configured is unconditionally true; there is nothing to configure.
func (g *Generator) Configured() bool { return true }

// Generate returns exactly req.Count image references derived from the
// prompt. The same prompt and count always yield the same references.
func (g *Generator) Generate(_ context.Context, req types.ImageRequest) (*types.ImageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image request: %w", err)
	}

	seed := promptSeed(req.Prompt)
	refs := make([]types.ImageRef, req.Count)
	for i := range refs {
		refs[i] = types.ImageRef{
			URL: fmt.Sprintf("https://picsum.photos/seed/%s-%d/%d/%d", seed, i+1, imageWidth, imageHeight),
		}
	}

	return &types.ImageResult{Refs: refs, Provider: ProviderName}, nil
}

// promptSeed derives a short stable seed from the prompt text.
func promptSeed(prompt string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(prompt))
	return fmt.Sprintf("%016x", h.Sum64())
}
