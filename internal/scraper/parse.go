package scraper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/mizuha/rednote-remix/internal/textutil"
	"github.com/mizuha/rednote-remix/internal/types"
)

// titleSelectors and bodySelectors are tried in order; the page layout has
// changed across site versions so several generations are covered.
var (
	titleSelectors = []string{"#detail-title", "div[class*='title']", "h1[class*='title']", ".note-title"}
	bodySelectors  = []string{"#detail-desc", "div[class*='desc']", "div[class*='note-content']", ".note-content"}
	mediaSelectors = []string{
		".swiper-slide img",
		"div[class*='image-list'] img",
		".swiper-wrapper img",
		"section[class*='note'] img",
	}
)

// parseNote turns the raw page captures into a ContentRecord. The SPA keeps
// the note in an initial-state JSON blob which is far more stable than CSS
// selectors, so that is tried first and the rendered HTML is the fallback.
func parseNote(stateJSON, html, sourceURL string) (*types.ContentRecord, error) {
	if stateJSON != "" {
		if record, err := parseInitialState(stateJSON, sourceURL); err == nil {
			return record, nil
		} else {
			log.Debug().Str("component", "scraper").Err(err).Msg("initial state unusable, falling back to rendered HTML")
		}
	}
	return parseRenderedHTML(html, sourceURL)
}

// parseInitialState walks the known locations of the note object inside the
// SPA state blob.
func parseInitialState(stateJSON, sourceURL string) (*types.ContentRecord, error) {
	var state map[string]interface{}
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, &Error{Kind: KindParseFailure, URL: sourceURL, Message: "initial state is not valid JSON", Cause: err}
	}

	note := findNoteObject(state)
	if note == nil {
		return nil, &Error{Kind: KindParseFailure, URL: sourceURL, Message: "no note object in initial state"}
	}

	record := &types.ContentRecord{
		SourceURL:   sourceURL,
		Title:       textutil.CleanText(stringField(note, "title")),
		Body:        textutil.CleanText(firstStringField(note, "desc", "content")),
		MediaURLs:   stateImageURLs(note),
		ExtractedAt: time.Now(),
	}
	if user, ok := note["user"].(map[string]interface{}); ok {
		record.Author = stringField(user, "nickname")
	}
	record.Likes = intField(note, "likedCount", "likeCount")
	return record, nil
}

// findNoteObject tries the state paths observed across site versions:
// note.noteDetailMap.<first>.note, then a top-level noteDetail, then any
// object that carries a title.
func findNoteObject(state map[string]interface{}) map[string]interface{} {
	if noteRoot, ok := state["note"].(map[string]interface{}); ok {
		if detailMap, ok := noteRoot["noteDetailMap"].(map[string]interface{}); ok {
			for _, entry := range detailMap {
				if detail, ok := entry.(map[string]interface{}); ok {
					if note, ok := detail["note"].(map[string]interface{}); ok {
						return note
					}
				}
			}
		}
	}

	if detail, ok := state["noteDetail"].(map[string]interface{}); ok {
		return detail
	}

	for _, value := range state {
		if obj, ok := value.(map[string]interface{}); ok {
			if _, hasTitle := obj["title"]; hasTitle {
				return obj
			}
		}
	}
	return nil
}

// stateImageURLs reads the ordered image list from a note object, preferring
// the full-size urlDefault variant.
func stateImageURLs(note map[string]interface{}) []string {
	list, ok := note["imageList"].([]interface{})
	if !ok {
		list, _ = note["images"].([]interface{})
	}

	urls := make([]string, 0, len(list))
	for _, entry := range list {
		img, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		u := firstStringField(img, "urlDefault", "url")
		if u == "" {
			continue
		}
		urls = append(urls, normalizeMediaURL(u))
	}
	return urls
}

// parseRenderedHTML is the CSS-selector fallback for pages where the state
// blob is missing or unreadable.
func parseRenderedHTML(html, sourceURL string) (*types.ContentRecord, error) {
	if strings.TrimSpace(html) == "" {
		return nil, &Error{Kind: KindParseFailure, URL: sourceURL, Message: "empty page"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Kind: KindParseFailure, URL: sourceURL, Message: "failed to parse HTML", Cause: err}
	}

	title := selectText(doc, titleSelectors, false)
	body := selectText(doc, bodySelectors, true)
	media := collectMediaURLs(doc)

	if title == "" && body == "" && len(media) == 0 {
		return nil, &Error{Kind: KindParseFailure, URL: sourceURL, Message: "no note content found on page"}
	}

	return &types.ContentRecord{
		SourceURL:   sourceURL,
		Title:       title,
		Body:        body,
		MediaURLs:   media,
		ExtractedAt: time.Now(),
	}, nil
}

// selectText returns cleaned text for the first selector that matches. When
// concatSiblings is set, every match of that selector contributes in document
// order; note bodies are frequently split across sibling elements.
func selectText(doc *goquery.Document, selectors []string, concatSiblings bool) string {
	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		if !concatSiblings {
			return textutil.CleanText(selection.First().Text())
		}
		var parts []string
		selection.Each(func(_ int, s *goquery.Selection) {
			if text := textutil.CleanText(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}
	return ""
}

// collectMediaURLs gathers note image sources in document order, skipping
// avatars and UI chrome, de-duplicating, and normalizing each URL. An empty
// result is valid: notes without media extract fine.
func collectMediaURLs(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]bool)

	appendImg := func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("data-src")
		if !ok || src == "" {
			src, _ = s.Attr("src")
		}
		if src == "" || !isNoteImage(src) {
			return
		}
		src = normalizeMediaURL(src)
		if !seen[src] {
			seen[src] = true
			urls = append(urls, src)
		}
	}

	for _, selector := range mediaSelectors {
		doc.Find(selector).Each(appendImg)
		if len(urls) > 0 {
			return urls
		}
	}

	// Last resort: any image that looks like note media rather than chrome.
	doc.Find("img").Each(appendImg)
	return urls
}

// isNoteImage filters out avatars, icons and logos, keeping CDN note media.
func isNoteImage(src string) bool {
	lower := strings.ToLower(src)
	for _, skip := range []string{"avatar", "user", "icon", "logo"} {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	for _, keep := range []string{"sns-img", "sns", "pic", "image"} {
		if strings.Contains(lower, keep) {
			return true
		}
	}
	return false
}

// normalizeMediaURL upgrades to https and strips thumbnail parameters so the
// full-size asset is referenced.
func normalizeMediaURL(src string) string {
	src = strings.Replace(src, "http://", "https://", 1)
	if strings.Contains(src, "imageView2") || strings.Contains(src, "params") {
		src, _, _ = strings.Cut(src, "?")
	}
	return src
}

// stringField returns the string at key, or "".
func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

// firstStringField returns the first non-empty string among keys.
func firstStringField(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := stringField(obj, key); s != "" {
			return s
		}
	}
	return ""
}

// intField returns the first numeric value among keys, tolerating the string
// counts some site versions emit.
func intField(obj map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			return int(v)
		case string:
			var n int
			if err := json.Unmarshal([]byte(v), &n); err == nil {
				return n
			}
		}
	}
	return 0
}
