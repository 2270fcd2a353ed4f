package remix

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

// Extractor fetches a note page and parses it into a ContentRecord.
type Extractor interface {
	Extract(ctx context.Context, url string) (*types.ContentRecord, error)
}

// Orchestrator sequences the pipeline stages over a session. Providers are
// selected by registry id per call; Configured is always checked before
// Generate so unconfigured backends fail locally instead of remotely.
type Orchestrator struct {
	extractor Extractor
	registry  *provider.Registry
}

// New builds an Orchestrator.
func New(extractor Extractor, registry *provider.Registry) *Orchestrator {
	return &Orchestrator{extractor: extractor, registry: registry}
}

// RunOptions configures a full pipeline run.
type RunOptions struct {
	URL               string
	Style             types.Style
	CustomInstruction string
	TextProvider      string
	ImageProvider     string
	ImageCount        int
}

// Extract runs the extraction stage. On success the session holds an
// immutable ContentRecord; downstream stages read it but never modify it.
func (o *Orchestrator) Extract(ctx context.Context, s *Session) error {
	s.Stage = StageExtracting

	log.Info().Str("session", s.ID.String()).Str("url", s.SourceURL).Msg("extracting note")

	record, err := o.extractor.Extract(ctx, s.SourceURL)
	if err != nil {
		s.fail(StageExtracting)
		return fmt.Errorf("stage %s: %w", StageExtracting, err)
	}

	s.Record = record
	s.advance(StageExtracted)
	return nil
}

// Rewrite runs the rewrite stage against the named text provider, using the
// session's extracted record as input.
func (o *Orchestrator) Rewrite(ctx context.Context, s *Session, providerID string, style types.Style, customInstruction string) error {
	if s.Record == nil {
		return fmt.Errorf("stage %s: no extracted content to rewrite", StageRewriting)
	}

	gen, err := o.registry.Text(providerID)
	if err != nil {
		return fmt.Errorf("stage %s: %w", StageRewriting, err)
	}
	if !gen.Configured() {
		s.fail(StageRewriting)
		return fmt.Errorf("stage %s: %w", StageRewriting, provider.NotConfigured(gen.Name()))
	}

	s.Stage = StageRewriting

	log.Info().
		Str("session", s.ID.String()).
		Str("provider", gen.Name()).
		Str("style", string(style)).
		Msg("rewriting note")

	result, err := gen.Generate(ctx, types.RewriteRequest{
		OriginalTitle:     s.Record.Title,
		OriginalContent:   s.Record.Body,
		Style:             style,
		CustomInstruction: customInstruction,
	})
	if err != nil {
		s.fail(StageRewriting)
		return fmt.Errorf("stage %s: %w", StageRewriting, err)
	}

	s.Rewrite = result
	s.advance(StageRewritten)
	return nil
}

// GenerateImages runs the image stage against the named image provider. The
// prompt is built from the rewritten note when available, otherwise from the
// extracted record, so the stage is usable in isolation after extraction.
func (o *Orchestrator) GenerateImages(ctx context.Context, s *Session, providerID string, style types.Style, count int) error {
	title, body, ok := s.promptSource()
	if !ok {
		return fmt.Errorf("stage %s: no content to derive an image prompt from", StageGenerating)
	}

	gen, err := o.registry.Image(providerID)
	if err != nil {
		return fmt.Errorf("stage %s: %w", StageGenerating, err)
	}
	if !gen.Configured() {
		s.fail(StageGenerating)
		return fmt.Errorf("stage %s: %w", StageGenerating, provider.NotConfigured(gen.Name()))
	}

	s.Stage = StageGenerating

	prompt := BuildImagePrompt(title, body, style)

	log.Info().
		Str("session", s.ID.String()).
		Str("provider", gen.Name()).
		Int("count", count).
		Msg("generating images")

	result, err := gen.Generate(ctx, types.ImageRequest{Prompt: prompt, Count: count})
	if err != nil {
		s.fail(StageGenerating)
		return fmt.Errorf("stage %s: %w", StageGenerating, err)
	}

	s.Images = result
	s.advance(StageDone)
	return nil
}

// Run executes extract, rewrite, and image generation in order. On failure it
// returns the session alongside the error so the caller keeps every artifact
// produced before the failing stage and can retry just that stage.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*Session, error) {
	s := NewSession(opts.URL)

	if err := o.Extract(ctx, s); err != nil {
		return s, err
	}
	if err := o.Rewrite(ctx, s, opts.TextProvider, opts.Style, opts.CustomInstruction); err != nil {
		return s, err
	}
	if err := o.GenerateImages(ctx, s, opts.ImageProvider, opts.Style, opts.ImageCount); err != nil {
		return s, err
	}

	return s, nil
}

// promptSource picks the freshest title/body pair available on the session.
func (s *Session) promptSource() (title, body string, ok bool) {
	if s.Rewrite != nil {
		return s.Rewrite.Title, s.Rewrite.Text, true
	}
	if s.Record != nil {
		return s.Record.Title, s.Record.Body, true
	}
	return "", "", false
}
