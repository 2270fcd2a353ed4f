package placeholder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuha/rednote-remix/internal/types"
)

func TestConfigured_Always(t *testing.T) {
	assert.True(t, New().Configured())
	assert.Equal(t, "Placeholder", New().Name())
}

func TestGenerate_ExactCount(t *testing.T) {
	g := New()

	result, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "red lanterns over a night market", Count: 3})
	require.NoError(t, err)

	assert.Len(t, result.Refs, 3)
	assert.Equal(t, "Placeholder", result.Provider)
	for _, ref := range result.Refs {
		assert.NotEmpty(t, ref.URL)
		assert.Nil(t, ref.Data)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := New()
	req := types.ImageRequest{Prompt: "same prompt", Count: 2}

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Refs, second.Refs)

	other, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "different prompt", Count: 2})
	require.NoError(t, err)
	assert.NotEqual(t, first.Refs[0].URL, other.Refs[0].URL)
}

func TestGenerate_DistinctRefsWithinSet(t *testing.T) {
	g := New()
	result, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "p", Count: 4})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, ref := range result.Refs {
		assert.False(t, seen[ref.URL])
		seen[ref.URL] = true
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	g := New()
	_, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "p", Count: 0})
	assert.Error(t, err)
}
