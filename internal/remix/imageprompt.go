package remix

import (
	"strings"

	"github.com/mizuha/rednote-remix/internal/prompts"
	"github.com/mizuha/rednote-remix/internal/textutil"
	"github.com/mizuha/rednote-remix/internal/types"
)

// maxPromptKeywords bounds how much body text leaks into the image prompt.
// Image models respond to a handful of strong nouns, not a wall of prose.
const maxPromptKeywords = 10

// BuildImagePrompt derives an image-generation prompt from a note's title and
// body. Hashtags are treated as keywords rather than prose, the body is
// reduced to its first distinct words, and a style-specific visual hint is
// appended.
func BuildImagePrompt(title, body string, style types.Style) string {
	keywords := make([]string, 0, maxPromptKeywords)
	seen := make(map[string]bool)

	add := func(word string) {
		if len(keywords) >= maxPromptKeywords {
			return
		}
		word = strings.TrimSpace(word)
		if word == "" {
			return
		}
		key := strings.ToLower(word)
		if seen[key] {
			return
		}
		seen[key] = true
		keywords = append(keywords, word)
	}

	for _, tag := range textutil.ExtractHashtags(body) {
		add(tag)
	}
	clean := textutil.CleanText(textutil.StripHashtags(body))
	for _, word := range strings.Fields(clean) {
		add(word)
	}

	var sb strings.Builder
	if t := textutil.CleanText(title); t != "" {
		sb.WriteString(t)
	}
	if len(keywords) > 0 {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strings.Join(keywords, ", "))
	}
	if sb.Len() > 0 {
		sb.WriteString(". ")
	}
	sb.WriteString(prompts.ImageStyleHint(style))

	return sb.String()
}
