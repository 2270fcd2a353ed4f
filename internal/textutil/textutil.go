// Package textutil provides text cleanup and URL helpers shared by the
// extraction and generation stages.
package textutil

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	hashtagRe    = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	urlRe        = xurls.Strict()
)

// CleanText collapses runs of whitespace into single spaces and trims the ends.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ExtractHashtags returns the hashtag words found in content, in order.
func ExtractHashtags(content string) []string {
	matches := hashtagRe.FindAllStringSubmatch(content, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// StripHashtags removes hashtag tokens from content.
func StripHashtags(content string) string {
	return hashtagRe.ReplaceAllString(content, "")
}

// Truncate shortens text to at most max characters, appending an ellipsis
// when anything was cut.
func Truncate(text string, max int) string {
	if text == "" || len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

// FirstURL pulls the first http(s) URL out of free text. Share sheets paste
// the link wrapped in promotional text, so the raw input is rarely a bare URL.
// Returns an empty string when no URL is present.
func FirstURL(input string) string {
	for _, candidate := range urlRe.FindAllString(input, -1) {
		if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
			return candidate
		}
	}
	return ""
}

// IsNoteURL reports whether url points at a supported post, either the
// canonical xiaohongshu.com form or the xhslink.com short link.
func IsNoteURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	return strings.Contains(lower, "xiaohongshu.com") || strings.Contains(lower, "xhslink.com")
}
