// Package openf1 is a small read-only client for the OpenF1 timing API
// (https://openf1.org). It covers the three endpoints needed to chart race
// pace: sessions, drivers and laps.
package openf1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/banshee-data/racepace/internal/httputil"
	"github.com/banshee-data/racepace/internal/monitoring"
)

// DefaultBaseURL is the public OpenF1 endpoint.
const DefaultBaseURL = "https://api.openf1.org"

// Client issues one GET per call and never retries.
type Client struct {
	http      httputil.HTTPClient
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another deployment, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a client that sends requests through hc.
func NewClient(hc httputil.HTTPClient, opts ...Option) *Client {
	if hc == nil {
		hc = httputil.NewStandardClient(nil)
	}
	c := &Client{http: hc, baseURL: DefaultBaseURL}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// query is an ordered list of raw "key=value" or "key>value" terms. OpenF1
// encodes comparison filters in the key itself, which url.Values cannot express.
type query []string

func (q query) eq(k, v string) query { return append(q, k+"="+url.QueryEscape(v)) }
func (q query) gt(k, v string) query { return append(q, k+">"+url.QueryEscape(v)) }

func (c *Client) fetch(ctx context.Context, op, path string, q query, v any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + strings.Join(q, "&")
	}
	monitoring.Debugf("openf1: GET %s", u)

	var header http.Header
	if c.userAgent != "" {
		header = http.Header{"User-Agent": {c.userAgent}}
	}

	body, err := httputil.Get(ctx, c.http, u, header)
	if err != nil {
		return newError(ErrNetwork, op, err)
	}

	// OpenF1 answers an unmatched filter with {"detail": "No results found."}
	// on some deployments instead of an empty array.
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return newError(ErrParse, op, errors.New("empty response body"))
	}
	if strings.HasPrefix(trimmed, "{") {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil && strings.Contains(strings.ToLower(detail.Detail), "no results") {
			body = []byte("[]")
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return newError(ErrParse, op, err)
	}
	return nil
}
