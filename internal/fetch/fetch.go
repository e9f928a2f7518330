// ABOUTME: HTTP fetcher that retrieves raw feed documents over HTTPS with feed-reader request headers
// ABOUTME: Upgrades insecure URLs, bounds response size and time, and reports failures as FetchError

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
	DefaultTimeout  = 30 * time.Second

	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Feedbro/4.0"
	Accept    = "application/rss+xml, application/xml, application/atom+xml, text/xml;q=0.9, */*;q=0.8"
)

// ErrEmptyBody is wrapped by FetchError when the server returns no content.
var ErrEmptyBody = errors.New("empty response from feed")

// FetchError reports a failed retrieval. StatusCode is zero for transport errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var insecureScheme = regexp.MustCompile(`(?i)^http://`)

// SecureURL rewrites a leading http:// to https://.
func SecureURL(rawURL string) string {
	return insecureScheme.ReplaceAllString(rawURL, "https://")
}

// Fetcher retrieves feed documents. The zero value is not usable; call New.
type Fetcher struct {
	client   *http.Client
	resolver resolver
}

// resolver is the part of *net.Resolver used to screen hosts before dialing.
type resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// New returns a Fetcher whose requests are bounded by timeout.
// A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, resolver: net.DefaultResolver}
}

// NewWithClient wraps an existing client, e.g. one trusting a test server.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client, resolver: net.DefaultResolver}
}

// isPrivateIP checks if an IP address is in a private range (excluding loopback for tests).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// screenHost rejects hosts that resolve to private ranges. The lookup shares
// ctx and the client timeout. Lookup failures are left for the dial to report.
func (f *Fetcher) screenHost(ctx context.Context, host string) error {
	if f.client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.client.Timeout)
		defer cancel()
	}
	addrs, err := f.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("resolve %s: %w", host, ctxErr)
		}
		return nil
	}
	for _, a := range addrs {
		if isPrivateIP(a.IP) {
			return errors.New("access to private IP ranges is not allowed")
		}
	}
	return nil
}

// Fetch retrieves rawURL and returns the body as text.
// The URL is upgraded to HTTPS first. Transport failures, non-2xx statuses,
// oversized bodies, and empty bodies all yield a *FetchError. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	secure := SecureURL(rawURL)

	parsedURL, err := url.Parse(secure)
	if err != nil {
		return "", &FetchError{URL: secure, Err: fmt.Errorf("invalid URL: %w", err)}
	}
	if parsedURL.Host == "" {
		return "", &FetchError{URL: secure, Err: errors.New("invalid URL: missing host")}
	}

	if err := f.screenHost(ctx, parsedURL.Hostname()); err != nil {
		return "", &FetchError{URL: secure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, secure, nil)
	if err != nil {
		return "", &FetchError{URL: secure, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", Accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: secure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: secure, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return "", &FetchError{URL: secure, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(body)) > MaxResponseSize {
		return "", &FetchError{URL: secure, Err: fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)}
	}
	if len(body) == 0 {
		return "", &FetchError{URL: secure, Err: ErrEmptyBody}
	}

	return string(body), nil
}
