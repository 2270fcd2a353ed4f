// Package types provides type definitions for structured data used throughout the rednote-remix system.
package types

import "time"

// ContentRecord is the normalized result of extracting a post's text and media.
// Title and Body may be empty strings on partial extraction, but the fields are
// always present. MediaURLs preserves the order the media appeared on the page.
// A ContentRecord is created once per extraction and never mutated afterwards;
// downstream stages read from it but do not write to it.
type ContentRecord struct {
	SourceURL   string    `json:"source_url"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MediaURLs   []string  `json:"media_urls"`
	Author      string    `json:"author,omitempty"`
	Likes       int       `json:"likes,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Clone returns a deep copy of the record so callers can hand it to another
// stage without sharing the MediaURLs backing array.
func (r *ContentRecord) Clone() *ContentRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.MediaURLs = make([]string, len(r.MediaURLs))
	copy(out.MediaURLs, r.MediaURLs)
	return &out
}
