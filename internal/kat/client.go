// Package kat is a client for the KickassTorrents search endpoint. It builds
// the search path from a Spec, fetches the results page and scrapes it into
// a Result.
package kat

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrorReporter receives rejected search specs.
type ErrorReporter func(err error)

// Option configures a Client.
type Option func(*Client)

// WithErrorReporter sets the sink for input errors. The default logs a warning.
func WithErrorReporter(r ErrorReporter) Option {
	return func(c *Client) {
		if r != nil {
			c.onError = r
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.fetcher.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.fetcher.client = hc
		}
	}
}

// Client searches the index. It holds no per-search state, so concurrent
// calls to Search are independent.
type Client struct {
	fetcher *Fetcher
	onError ErrorReporter
}

// NewClient creates a client for baseURL ("" for DefaultBaseURL).
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		fetcher: NewFetcher(baseURL, timeout),
		onError: func(err error) {
			log.Warnf("KAT: %v", err)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the absolute URL a spec would be fetched from.
func (c *Client) URL(spec Spec) (string, error) {
	endpoint, err := BuildEndpoint(spec)
	if err != nil {
		return "", err
	}
	return c.fetcher.URL(endpoint), nil
}

// Search builds the endpoint for spec, fetches it and parses the page.
// Input errors are passed to the error reporter once and returned.
func (c *Client) Search(ctx context.Context, spec Spec) (*Result, error) {
	endpoint, err := BuildEndpoint(spec)
	if err != nil {
		c.onError(err)
		return nil, err
	}

	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	result, err := ParsePage(body, PageOf(spec), time.Since(start))
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"elapsed":  result.ResponseTime,
		"results":  len(result.Results),
	}).Debugf("Search complete")
	return result, nil
}
