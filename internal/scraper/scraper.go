// Package scraper drives a headless browser session to turn a note URL into a
// normalized ContentRecord. Every Extract call gets its own isolated browser
// which is torn down on all exit paths; sessions are never pooled or reused,
// so no cookies or navigation history leak between requests.
package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/mizuha/rednote-remix/internal/textutil"
	"github.com/mizuha/rednote-remix/internal/types"
)

// DefaultTimeout bounds one whole extraction, navigation and content wait included.
const DefaultTimeout = 45 * time.Second

// defaultUserAgent mimics a desktop browser; the target serves a stripped
// page to obvious automation.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// contentReadyJS is polled until the note container or the SPA initial state
// shows up, whichever comes first.
const contentReadyJS = `document.getElementById('initial-state') !== null ||
	window.__INITIAL_STATE__ !== undefined ||
	document.querySelector("#detail-title, #detail-desc, div[class*='note-content'], .note-content") !== null`

// initialStateJS pulls the SPA state as a JSON string, or "" when absent.
const initialStateJS = `(() => {
	const s = document.getElementById('initial-state');
	if (s && s.textContent) return s.textContent;
	if (window.__INITIAL_STATE__ !== undefined) {
		try { return JSON.stringify(window.__INITIAL_STATE__); } catch (e) {}
	}
	return "";
})()`

// Scraper extracts note content from post URLs.
type Scraper struct {
	headless  bool
	cookies   string
	timeout   time.Duration
	userAgent string
}

// Option customizes a Scraper.
type Option func(*Scraper)

// WithCookies supplies a browser cookie string ("name=value; name2=value2")
// used to access notes behind a login.
func WithCookies(cookies string) Option {
	return func(s *Scraper) { s.cookies = cookies }
}

// WithTimeout overrides the per-extraction bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHeadful runs a visible browser, useful when debugging extraction locally.
func WithHeadful() Option {
	return func(s *Scraper) { s.headless = false }
}

// New builds a Scraper with defaults suitable for unattended runs.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		headless:  true,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract loads the note page in a fresh headless browser, waits (bounded)
// for its content, and returns the normalized record. Title and body may be
// empty and the media list may have length zero; both are partial success,
// not errors.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (*types.ContentRecord, error) {
	if err := s.validateURL(rawURL); err != nil {
		return nil, err
	}

	log.Debug().Str("component", "scraper").Str("url", rawURL).Msg("starting extraction")

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", s.headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.WindowSize(1920, 1080),
			chromedp.UserAgent(s.userAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, s.timeout)
	defer cancelRun()

	var (
		finalURL  string
		stateJSON string
		html      string
	)

	tasks := chromedp.Tasks{
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
			"Referer":         "https://www.xiaohongshu.com/",
		})),
	}
	if s.cookies != "" {
		tasks = append(tasks, setCookies(s.cookies))
	}
	tasks = append(tasks,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Location(&finalURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if isBlockedURL(finalURL) {
				return &Error{
					Kind:    KindBlockedByTarget,
					URL:     rawURL,
					Message: "target redirected to a login wall; supply cookies for gated notes",
				}
			}
			return nil
		}),
		chromedp.Poll(contentReadyJS, nil),
		chromedp.Evaluate(initialStateJS, &stateJSON),
		chromedp.OuterHTML("html", &html),
	)

	if err := chromedp.Run(runCtx, tasks...); err != nil {
		return nil, s.classifyError(rawURL, err)
	}

	record, err := parseNote(stateJSON, html, rawURL)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("component", "scraper").
		Str("url", rawURL).
		Int("media", len(record.MediaURLs)).
		Msg("extraction complete")
	return record, nil
}

// validateURL rejects inputs that are not a supported note link before any
// browser process is spawned.
func (s *Scraper) validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &Error{Kind: KindNotFound, URL: rawURL, Message: "invalid URL", Cause: err}
	}
	if !textutil.IsNoteURL(rawURL) {
		return &Error{Kind: KindNotFound, URL: rawURL, Message: "not a supported note URL"}
	}
	return nil
}

// classifyError maps browser failures onto the extraction error taxonomy.
func (s *Scraper) classifyError(rawURL string, err error) error {
	var extractionErr *Error
	if errors.As(err, &extractionErr) {
		return extractionErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, chromedp.ErrPollingTimeout):
		return &Error{
			Kind:    KindTimeout,
			URL:     rawURL,
			Message: "content container did not appear within the wait window",
			Cause:   err,
		}
	case strings.Contains(err.Error(), "net::ERR_NAME_NOT_RESOLVED"),
		strings.Contains(err.Error(), "net::ERR_CONNECTION"),
		strings.Contains(err.Error(), "net::ERR_ABORTED"):
		return &Error{Kind: KindNotFound, URL: rawURL, Message: "page could not be loaded", Cause: err}
	default:
		return &Error{Kind: KindParseFailure, URL: rawURL, Message: "browser session failed", Cause: err}
	}
}

// isBlockedURL reports whether the post-navigation URL is a login or
// verification wall rather than the note itself.
func isBlockedURL(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	return strings.Contains(lower, "/login") || strings.Contains(lower, "/captcha")
}

// setCookies installs a "name=value; name2=value2" cookie string on the
// browser context so gated notes resolve.
func setCookies(cookies string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, pair := range strings.Split(cookies, ";") {
			pair = strings.TrimSpace(pair)
			name, value, ok := strings.Cut(pair, "=")
			if !ok || name == "" {
				continue
			}
			err := network.SetCookie(strings.TrimSpace(name), value).
				WithDomain(".xiaohongshu.com").
				WithPath("/").
				WithHTTPOnly(true).
				WithSecure(true).
				Do(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
