package crawler

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// HTTPClient is a thin GET-only client with a fixed User-Agent, an explicit
// connect timeout separate from the overall request timeout, and transparent
// response decompression. It performs no retries; retry policy belongs to
// the process level (a rerun resumes from persisted state).
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// HTTPResponse contains the response of a single GET.
type HTTPResponse struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
	FinalURL    string // after following redirects
}

// NewHTTPClient creates an HTTP client. connectTimeout bounds dialing only;
// requestTimeout bounds the whole exchange including body read.
func NewHTTPClient(userAgent string, connectTimeout, requestTimeout time.Duration) *HTTPClient {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false, // let Go negotiate and decode gzip
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	return &HTTPClient{
		client:    client,
		userAgent: userAgent,
	}
}

// Get performs a single blocking GET. Transport failures (DNS, connect,
// timeout) come back as errors; non-2xx responses are returned to the
// caller unjudged. HTML body bytes are transcoded to UTF-8 when the
// response declares another charset.
func (h *HTTPClient) Get(ctx context.Context, url string) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")

	var reader io.Reader = resp.Body
	if strings.Contains(contentType, "html") {
		if dec, err := charset.NewReader(resp.Body, contentType); err == nil {
			reader = dec
		}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &HTTPResponse{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		Body:        body,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// Close releases idle connections.
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}
