package linkcheck

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
	"github.com/MrSnakeDoc/linkshelf/internal/version"
)

// DefaultTimeout bounds one probe end to end.
const DefaultTimeout = 5 * time.Second

// Checker sends a single HEAD request per URL and never follows redirects.
type Checker struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option customizes a Checker.
type Option func(*Checker)

// WithTransport replaces the HTTP transport (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Checker) { c.client.Transport = rt }
}

// WithUserAgent overrides the default "linkshelf/<version>" agent.
func WithUserAgent(ua string) Option {
	return func(c *Checker) { c.userAgent = ua }
}

// NewChecker builds a checker. A non-positive timeout falls back to DefaultTimeout.
func NewChecker(timeout time.Duration, opts ...Option) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Checker{
		timeout:   timeout,
		userAgent: version.UserAgent(),
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 0,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				DisableKeepAlives: true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Don't follow redirects
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-probe deadline.
func (c *Checker) Timeout() time.Duration { return c.timeout }

// Check probes rawURL once. It never returns an error: every failure is
// folded into the Result.
func (c *Checker) Check(ctx context.Context, rawURL string) Result {
	if err := domain.ValidateURL(rawURL); err != nil {
		return Result{Status: Error, Message: "invalid url: " + err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return Result{Status: Error, Message: err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return Result{Status: Timeout}
		}
		return Result{Status: Error, Message: errorMessage(err)}
	}
	defer utils.Close(resp.Body)

	return classify(resp, rawURL)
}

func classify(resp *http.Response, rawURL string) Result {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return Result{Status: Online, StatusCode: code}
	case code >= 300 && code < 400:
		final := resp.Header.Get("Location")
		if final == "" {
			final = rawURL
		}
		return Result{Status: Redirected, StatusCode: code, FinalURL: final}
	default:
		return Result{Status: Offline, StatusCode: code}
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown fetch error"
}
