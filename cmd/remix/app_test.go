package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuha/rednote-remix/internal/config"
)

func TestBuildRegistry_AllBackendsRegistered(t *testing.T) {
	registry := buildRegistry(&config.Config{})

	assert.Equal(t, []string{textProviderDeepSeek, textProviderGemini}, registry.TextIDs())
	assert.Equal(t, []string{imageProviderJimeng, imageProviderPlaceholder}, registry.ImageIDs())
}

func TestBuildRegistry_ConfiguredFollowsCredentials(t *testing.T) {
	registry := buildRegistry(&config.Config{
		DeepSeekAPIKey: "sk-test",
		JimengAPIKey:   "ark-key",
		// endpoint id missing, so jimeng stays unconfigured
	})

	deepseekGen, err := registry.Text(textProviderDeepSeek)
	require.NoError(t, err)
	assert.True(t, deepseekGen.Configured())

	geminiGen, err := registry.Text(textProviderGemini)
	require.NoError(t, err)
	assert.False(t, geminiGen.Configured())

	placeholderGen, err := registry.Image(imageProviderPlaceholder)
	require.NoError(t, err)
	assert.True(t, placeholderGen.Configured())

	jimengGen, err := registry.Image(imageProviderJimeng)
	require.NoError(t, err)
	assert.False(t, jimengGen.Configured())
}

func TestBuildScraper_UsesConfig(t *testing.T) {
	s := buildScraper(&config.Config{
		Headless:       true,
		ExtractTimeout: 10 * time.Second,
	})
	assert.NotNil(t, s)
}
