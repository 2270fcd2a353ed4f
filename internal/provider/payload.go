package provider

import (
	"encoding/json"
	"strings"

	"github.com/mizuha/rednote-remix/internal/schemas"
	"github.com/mizuha/rednote-remix/internal/types"
)

// ParseRewritePayload checks a text backend's JSON output against the rewrite
// schema and decodes it into a RewriteResult attributed to providerName.
// Every chat-style backend returns the same {new_title,new_content} envelope,
// so the parsing lives here rather than in each provider.
func ParseRewritePayload(providerName, content string) (*types.RewriteResult, error) {
	payload := StripCodeFences(content)

	if err := schemas.ValidateDocument(schemas.RewriteResponseSchema, payload); err != nil {
		return nil, &Error{
			Kind:     KindInvalidResponse,
			Provider: providerName,
			Message:  "rewrite payload failed schema check",
			Cause:    err,
		}
	}

	var parsed struct {
		NewTitle   string `json:"new_title"`
		NewContent string `json:"new_content"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, &Error{
			Kind:     KindInvalidResponse,
			Provider: providerName,
			Message:  "rewrite payload is not valid JSON",
			Cause:    err,
		}
	}

	return &types.RewriteResult{
		Title:    strings.TrimSpace(parsed.NewTitle),
		Text:     strings.TrimSpace(parsed.NewContent),
		Provider: providerName,
	}, nil
}

// StripCodeFences removes markdown code block wrappers some models insist on
// adding around JSON.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
