package kat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the search endpoint every request is sent to.
const DefaultBaseURL = "https://kat.cr/usearch/"

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

// Fetcher loads raw search pages from the index.
type Fetcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewFetcher creates a fetcher for baseURL with a per-request timeout.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		baseURL:   baseURL,
		userAgent: DefaultUserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// sortMarker starts the query part the endpoint builder appends for sorting.
const sortMarker = "/?field="

// URL returns the absolute URL requested for an endpoint. Everything before
// the sort marker is path, so a '?' typed into the search text is escaped.
func (f *Fetcher) URL(endpoint string) string {
	path, rawQuery := endpoint, ""
	if i := strings.LastIndex(endpoint, sortMarker); i >= 0 {
		path, rawQuery = endpoint[:i+1], endpoint[i+2:]
	}
	u := f.baseURL + (&url.URL{Path: path}).EscapedPath()
	if rawQuery != "" {
		u += "?" + escapeQuery(rawQuery)
	}
	return u
}

// escapeQuery percent-encodes bytes that may not appear raw in a query
// string. Separators and existing escapes are left alone.
func escapeQuery(q string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte("\"#<>\\^`{|}", c) >= 0 {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Fetch GETs the endpoint and returns the decoded body.
// Failures are a *TransportError or a *DataError.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(endpoint), nil)
	if err != nil {
		return "", &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.WithFields(log.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Debugf("Search page rejected")
		return "", &DataError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", &TransportError{Endpoint: endpoint, Err: err}
	}

	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(body),
	}).Debugf("Fetched search page")

	if len(body) == 0 {
		return "", &DataError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return string(body), nil
}

// decodeBody reads the response, undoing gzip or deflate content encoding.
func decodeBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return raw, nil
	}

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case "deflate":
		// Servers send either zlib-wrapped or raw deflate streams.
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			defer zr.Close()
			return io.ReadAll(zr)
		}
		fr := flate.NewReader(bytes.NewReader(raw))
		defer fr.Close()
		return io.ReadAll(fr)
	default:
		return raw, nil
	}
}
