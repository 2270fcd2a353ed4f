package scraper

import "fmt"

// ErrorKind classifies an extraction failure into the closed set callers
// pattern-match on for stage-targeted retries.
type ErrorKind string

const (
	// KindTimeout means the page or its content container did not appear
	// within the bounded wait window.
	KindTimeout ErrorKind = "timeout"
	// KindNotFound means the URL was invalid, unsupported, or unreachable.
	KindNotFound ErrorKind = "not_found"
	// KindParseFailure means the page loaded but no note content could be read.
	KindParseFailure ErrorKind = "parse_failure"
	// KindBlockedByTarget means the site answered with a login wall or other
	// anti-bot redirect instead of the note.
	KindBlockedByTarget ErrorKind = "blocked_by_target"
)

// Error represents an extraction failure with the stage context attached.
type Error struct {
	Kind    ErrorKind
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %s: %v", e.URL, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s: %s", e.URL, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
