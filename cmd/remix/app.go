package main

import (
	"github.com/mizuha/rednote-remix/internal/config"
	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/provider/deepseek"
	"github.com/mizuha/rednote-remix/internal/provider/gemini"
	"github.com/mizuha/rednote-remix/internal/provider/jimeng"
	"github.com/mizuha/rednote-remix/internal/provider/placeholder"
	"github.com/mizuha/rednote-remix/internal/remix"
	"github.com/mizuha/rednote-remix/internal/scraper"
)

// Registry ids accepted by the --provider flags.
const (
	textProviderDeepSeek = "deepseek"
	textProviderGemini   = "gemini"

	imageProviderPlaceholder = "placeholder"
	imageProviderJimeng      = "jimeng"
)

// buildRegistry wires every known backend. Backends missing credentials are
// still registered; they report themselves unconfigured and the orchestrator
// refuses to call them.
func buildRegistry(cfg *config.Config) *provider.Registry {
	registry := provider.NewRegistry()

	var deepseekOpts []deepseek.Option
	if cfg.DeepSeekBaseURL != "" {
		deepseekOpts = append(deepseekOpts, deepseek.WithBaseURL(cfg.DeepSeekBaseURL))
	}
	registry.RegisterText(textProviderDeepSeek, deepseek.New(cfg.DeepSeekAPIKey, deepseekOpts...))
	registry.RegisterText(textProviderGemini, gemini.New(cfg.GeminiAPIKey))

	registry.RegisterImage(imageProviderPlaceholder, placeholder.New())
	registry.RegisterImage(imageProviderJimeng, jimeng.New(cfg.JimengAPIKey, cfg.JimengEndpointID))

	return registry
}

// buildScraper constructs the extractor from config.
func buildScraper(cfg *config.Config) *scraper.Scraper {
	opts := []scraper.Option{scraper.WithTimeout(cfg.ExtractTimeout)}
	if cfg.Cookies != "" {
		opts = append(opts, scraper.WithCookies(cfg.Cookies))
	}
	if !cfg.Headless {
		opts = append(opts, scraper.WithHeadful())
	}
	return scraper.New(opts...)
}

// buildOrchestrator assembles the full pipeline.
func buildOrchestrator(cfg *config.Config) *remix.Orchestrator {
	return remix.New(buildScraper(cfg), buildRegistry(cfg))
}
