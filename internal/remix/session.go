// Package remix orchestrates the note pipeline: extraction, text rewriting,
// and image generation. Each stage is independently invokable and retryable;
// a failed stage never discards results already produced upstream.
package remix

import (
	"github.com/google/uuid"

	"github.com/mizuha/rednote-remix/internal/types"
)

// Stage identifies where a session is in the pipeline.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageExtracting Stage = "extracting"
	StageExtracted  Stage = "extracted"
	StageRewriting  Stage = "rewriting"
	StageRewritten  Stage = "rewritten"
	StageGenerating Stage = "generating"
	StageDone       Stage = "done"
	StageErrored    Stage = "errored"
)

// Session carries one request through the pipeline. It owns its artifacts
// exclusively; nothing here is shared between concurrent sessions.
type Session struct {
	ID        uuid.UUID
	SourceURL string

	Stage Stage
	// FailedStage records which in-progress stage errored when Stage is
	// StageErrored. Retrying that stage clears it.
	FailedStage Stage

	Record  *types.ContentRecord
	Rewrite *types.RewriteResult
	Images  *types.ImageResult
}

// NewSession starts a fresh session for the given note URL.
func NewSession(url string) *Session {
	return &Session{
		ID:        uuid.New(),
		SourceURL: url,
		Stage:     StageIdle,
	}
}

// fail moves the session into the absorbing errored state, remembering the
// stage that broke so a caller can retry just that stage.
func (s *Session) fail(stage Stage) {
	s.Stage = StageErrored
	s.FailedStage = stage
}

// advance records a completed stage and clears any previous failure.
func (s *Session) advance(stage Stage) {
	s.Stage = stage
	s.FailedStage = ""
}
