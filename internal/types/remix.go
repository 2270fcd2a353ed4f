package types

import (
	"github.com/go-playground/validator/v10"
)

// Style is a named rewriting tone selected by the caller.
type Style string

const (
	// StyleAttention rewrites for maximum hook: exaggeration, questions, contrast.
	StyleAttention Style = "attention"
	// StyleValue rewrites as structured, practical value-sharing content.
	StyleValue Style = "value"
	// StyleEmotional rewrites with emotive, story-driven language.
	StyleEmotional Style = "emotional"
	// StyleCustom applies a caller-supplied instruction verbatim.
	StyleCustom Style = "custom"
)

// Styles lists every supported style in display order.
func Styles() []Style {
	return []Style{StyleAttention, StyleValue, StyleEmotional, StyleCustom}
}

// RewriteRequest carries the inputs for one text rewrite call.
// CustomInstruction is required when Style is StyleCustom and ignored otherwise.
type RewriteRequest struct {
	OriginalTitle     string `json:"original_title"`
	OriginalContent   string `json:"original_content"`
	Style             Style  `json:"style" validate:"required,oneof=attention value emotional custom"`
	CustomInstruction string `json:"custom_instruction,omitempty" validate:"required_if=Style custom"`
}

// Validate checks the request before any provider call is attempted.
func (r *RewriteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RewriteResult holds one provider's rewritten content.
// Text is the rewritten body; Title is the rewritten title when the backend
// produces one. Provider is the human-readable provider name.
type RewriteResult struct {
	Title    string `json:"title,omitempty"`
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

// ImageRequest carries the inputs for one image generation call.
type ImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Count  int    `json:"count" validate:"required,min=1"`
}

// Validate checks the request before any provider call is attempted.
func (r *ImageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ImageRef points at one generated image: either a URL or inline bytes,
// depending on what the backend returns. Exactly one of the two is expected
// to be set.
type ImageRef struct {
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// ImageResult holds the ordered images one provider produced.
type ImageResult struct {
	Refs     []ImageRef `json:"refs"`
	Provider string     `json:"provider"`
}
