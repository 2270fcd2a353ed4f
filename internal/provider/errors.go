package provider

import "fmt"

// ErrorKind classifies a provider failure into the closed set callers
// pattern-match on.
type ErrorKind string

const (
	// KindNotConfigured means required credentials are missing. Raised by the
	// pre-flight Configured check, never discovered mid-call.
	KindNotConfigured ErrorKind = "not_configured"
	// KindRemoteFailure means the remote call failed at the transport or API level.
	KindRemoteFailure ErrorKind = "remote_failure"
	// KindInvalidResponse means the remote call succeeded but the payload was unusable.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindRateLimited means the backend rejected the call for quota reasons.
	KindRateLimited ErrorKind = "rate_limited"
)

// Error is the one error shape every provider surfaces. Raw transport errors
// are wrapped here at the provider boundary and never leak to callers.
type Error struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NotConfigured builds the error returned when a pre-flight check fails.
func NotConfigured(providerName string) *Error {
	return &Error{
		Kind:     KindNotConfigured,
		Provider: providerName,
		Message:  "required credentials are missing",
	}
}
