// Package http provides a flexlist.PageSource that fetches raw page source
// from a wiki over HTTP.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/flexlist"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRequestsPerSecond is the default per-host request rate.
const DefaultRequestsPerSecond = 2

// PagePlaceholder is replaced with the escaped page name in URL templates.
const PagePlaceholder = "{page}"

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Source implements flexlist.PageSource at compile time.
var _ flexlist.PageSource = (*Source)(nil)

// Source retrieves page source from a URL template such as
// "https://wiki.example.com/?cmd=source&page={page}".
type Source struct {
	template    string
	client      *http.Client
	timeout     time.Duration
	limiter     *HostLimiter
	rps         float64
	selector    string
	retryDelays []time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithRateLimit sets the per-host request rate.
func WithRateLimit(rps float64) Option {
	return func(s *Source) {
		s.rps = rps
	}
}

// WithSelector extracts the source from the text of the first element
// matching a CSS selector, for wikis that wrap raw source in an HTML page.
func WithSelector(selector string) Option {
	return func(s *Source) {
		s.selector = selector
	}
}

// WithRetryDelays sets the backoff delays between attempts. An empty list
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Source) {
		s.retryDelays = delays
	}
}

// NewSource creates a new Source for the URL template.
func NewSource(template string, opts ...Option) *Source {
	s := &Source{
		template:    template,
		timeout:     DefaultFetchTimeout,
		rps:         DefaultRequestsPerSecond,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}
	s.limiter = NewHostLimiter(s.rps, 1)

	return s
}

// PageURL returns the URL of the named page.
func (s *Source) PageURL(name string) (*url.URL, error) {
	if !strings.Contains(s.template, PagePlaceholder) {
		return nil, flexlist.Errorf(flexlist.EINVALID, "URL template %q has no %s placeholder", s.template, PagePlaceholder)
	}
	u, err := url.Parse(strings.ReplaceAll(s.template, PagePlaceholder, url.QueryEscape(name)))
	if err != nil {
		return nil, flexlist.Errorf(flexlist.EINVALID, "invalid page URL: %v", err)
	}
	return u, nil
}

// FindSource fetches the source of the named page. Transient failures are
// retried; a 404 response returns ENOTFOUND immediately.
func (s *Source) FindSource(ctx context.Context, name string) (string, error) {
	u, err := s.PageURL(name)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= len(s.retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.retryDelays[attempt-1]):
			}
		}

		if err := s.limiter.Wait(ctx, u); err != nil {
			return "", err
		}

		body, err := s.fetch(ctx, u.String())
		if err == nil {
			return s.extract(body)
		}
		if flexlist.ErrorCode(err) == flexlist.ENOTFOUND || ctx.Err() != nil {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (s *Source) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", flexlist.Errorf(flexlist.ENOTFOUND, "page not found at %s", rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// extract returns the page source from a response body.
func (s *Source) extract(body string) (string, error) {
	if s.selector == "" {
		return body, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", flexlist.Errorf(flexlist.EINVALID, "failed to parse HTML: %v", err)
	}
	sel := doc.Find(s.selector).First()
	if sel.Length() == 0 {
		return "", flexlist.Errorf(flexlist.ENOTFOUND, "no element matches %q", s.selector)
	}
	return sel.Text(), nil
}
