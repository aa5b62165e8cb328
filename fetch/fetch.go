// Package fetch retrieves restaurant pages over HTTP and hands them to the
// HTML-to-text converter. It is the single place network and decode
// failures are classified.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"lunchbot/htmltext"
)

const (
	defaultTimeout = 20 * time.Second
	defaultUA      = "lunchbot/1.0"

	// maxBodyBytes caps how much of a response is read. Lunch pages are
	// small; anything larger is not a menu.
	maxBodyBytes = 2 * 1024 * 1024
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindNetwork Kind = "network"
	KindTimeout Kind = "timeout"
	KindDecode  Kind = "decode"
)

// Error is a classified fetch failure for one URL.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client fetches URLs and converts the bodies to plain-text lines.
// The zero value is not usable; call New.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Config holds fetch client settings.
type Config struct {
	// Timeout bounds one fetch end to end. If 0, defaults to 20s.
	Timeout time.Duration

	// UserAgent is sent with every request. If empty, a default is used.
	UserAgent string
}

// New creates a fetch client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUA
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  ua,
	}
}

// Lines fetches a URL and returns the page text as lines. Failures are
// returned as *Error with the kind set so callers can tell a slow host
// from a broken page.
func (c *Client) Lines(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind: KindNetwork,
			URL:  url,
			Err:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	if !utf8.Valid(body) {
		return nil, &Error{
			Kind: KindDecode,
			URL:  url,
			Err:  errors.New("response is not valid UTF-8"),
		}
	}

	return htmltext.Lines(string(body)), nil
}

// classify maps a transport error to a failure kind.
func classify(err error) Kind {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}
