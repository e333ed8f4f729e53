// Package httputil provides HTTP client abstractions for testability.
package httputil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// HTTPClient abstracts HTTP operations for testability.
// Use StandardClient for production; MockHTTPClient for testing.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// StandardClient wraps *http.Client to implement HTTPClient.
type StandardClient struct {
	*http.Client
}

// NewStandardClient creates a new StandardClient wrapping the given http.Client.
func NewStandardClient(c *http.Client) *StandardClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &StandardClient{Client: c}
}

// NewTimeoutClient returns a StandardClient whose requests give up after timeout.
func NewTimeoutClient(timeout time.Duration) *StandardClient {
	return NewStandardClient(&http.Client{Timeout: timeout})
}

// Do sends an HTTP request.
func (c *StandardClient) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}

// StatusError reports a response whose status code was not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// maxErrorBody bounds how much of a failed response is kept on StatusError.
const maxErrorBody = 512

// Get issues a GET for rawURL and returns the full response body. A non-2xx
// status is returned as *StatusError; transport failures are returned as-is.
func Get(ctx context.Context, c HTTPClient, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: msg}
	}
	return body, nil
}

// MockHTTPClient provides a testable HTTP client implementation.
//
// Routed responses (Handle) are matched by URL path and are safe for
// concurrent callers. Queued responses (AddResponse) are handed out in order
// to requests whose path has no route.
type MockHTTPClient struct {
	mu           sync.Mutex
	DoFunc       func(req *http.Request) (*http.Response, error)
	Requests     []*http.Request
	Responses    []*MockResponse
	Routes       map[string]*MockResponse
	responseIdx  int
	DefaultError error
}

// MockResponse defines a canned HTTP response for testing.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    http.Header
	Error      error
}

// NewMockHTTPClient creates a new mock HTTP client.
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		Requests:  []*http.Request{},
		Responses: []*MockResponse{},
		Routes:    map[string]*MockResponse{},
	}
}

// AddResponse queues a response to be returned by subsequent unrouted requests.
func (m *MockHTTPClient) AddResponse(statusCode int, body string) *MockHTTPClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = append(m.Responses, &MockResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    make(http.Header),
	})
	return m
}

// AddErrorResponse queues a transport error.
func (m *MockHTTPClient) AddErrorResponse(err error) *MockHTTPClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = append(m.Responses, &MockResponse{Error: err})
	return m
}

// Handle answers every request for path with the given status and body.
func (m *MockHTTPClient) Handle(path string, statusCode int, body string) *MockHTTPClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Routes[path] = &MockResponse{StatusCode: statusCode, Body: body, Headers: make(http.Header)}
	return m
}

// HandleError fails every request for path with err.
func (m *MockHTTPClient) HandleError(path string, err error) *MockHTTPClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Routes[path] = &MockResponse{Error: err}
	return m
}

// Do records the request and returns the routed or next queued response.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}

	if m.DefaultError != nil {
		return nil, m.DefaultError
	}

	if resp, ok := m.Routes[req.URL.Path]; ok {
		return resp.build(req)
	}

	if m.responseIdx < len(m.Responses) {
		resp := m.Responses[m.responseIdx]
		m.responseIdx++
		return resp.build(req)
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (r *MockResponse) build(req *http.Request) (*http.Response, error) {
	if r.Error != nil {
		return nil, r.Error
	}
	h := r.Headers
	if h == nil {
		h = make(http.Header)
	}
	return &http.Response{
		StatusCode: r.StatusCode,
		Body:       io.NopCloser(bytes.NewBufferString(r.Body)),
		Header:     h,
		Request:    req,
	}, nil
}

// GetRequest returns the nth recorded request.
func (m *MockHTTPClient) GetRequest(n int) *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 || n >= len(m.Requests) {
		return nil
	}
	return m.Requests[n]
}

// RequestsFor returns recorded requests for path, in arrival order.
func (m *MockHTTPClient) RequestsFor(path string) []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*http.Request
	for _, r := range m.Requests {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// RequestCount returns the number of recorded requests.
func (m *MockHTTPClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// Paths returns the sorted distinct paths requested so far.
func (m *MockHTTPClient) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, r := range m.Requests {
		if !seen[r.URL.Path] {
			seen[r.URL.Path] = true
			out = append(out, r.URL.Path)
		}
	}
	sort.Strings(out)
	return out
}

// Reset clears all recorded requests, routes and responses.
func (m *MockHTTPClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = []*http.Request{}
	m.Responses = []*MockResponse{}
	m.Routes = map[string]*MockResponse{}
	m.responseIdx = 0
	m.DefaultError = nil
	m.DoFunc = nil
}
