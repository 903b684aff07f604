package linkcheck

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.RoundTrip(r)
}

func statusServer(t *testing.T, code int, location string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if location != "" {
			w.Header().Set("Location", location)
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		location string
		want     Result
	}{
		{"ok", http.StatusOK, "", Result{Status: Online, StatusCode: 200}},
		{"no content", http.StatusNoContent, "", Result{Status: Online, StatusCode: 204}},
		{"moved permanently", http.StatusMovedPermanently, "https://x", Result{Status: Redirected, StatusCode: 301, FinalURL: "https://x"}},
		{"found relative", http.StatusFound, "/login", Result{Status: Redirected, StatusCode: 302, FinalURL: "/login"}},
		{"not modified", http.StatusNotModified, "", Result{Status: Redirected, StatusCode: 304}},
		{"not found", http.StatusNotFound, "", Result{Status: Offline, StatusCode: 404}},
		{"method not allowed", http.StatusMethodNotAllowed, "", Result{Status: Offline, StatusCode: 405}},
		{"server error", http.StatusInternalServerError, "", Result{Status: Offline, StatusCode: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := statusServer(t, tt.code, tt.location)

			got := NewChecker(time.Second).Check(context.Background(), srv.URL)

			want := tt.want
			if want.Status == Redirected && want.FinalURL == "" {
				want.FinalURL = srv.URL
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestCheckRedirectWithoutLocationFallsBackToURL(t *testing.T) {
	srv := statusServer(t, http.StatusTemporaryRedirect, "")
	target := srv.URL + "/old"

	got := NewChecker(time.Second).Check(context.Background(), target)

	assert.Equal(t, Redirected, got.Status)
	assert.Equal(t, 307, got.StatusCode)
	assert.Equal(t, target, got.FinalURL)
}

func TestCheckDoesNotFollowRedirects(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/from", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, "/to", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/to", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	got := NewChecker(time.Second).Check(context.Background(), srv.URL+"/from")

	assert.Equal(t, Redirected, got.Status)
	assert.Equal(t, "/to", got.FinalURL)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCheckSendsHeadWithUserAgent(t *testing.T) {
	var method, agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		agent = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	got := NewChecker(time.Second, WithUserAgent("linkshelf/test")).Check(context.Background(), srv.URL)

	require.Equal(t, Online, got.Status)
	assert.Equal(t, http.MethodHead, method)
	assert.Equal(t, "linkshelf/test", agent)
}

func TestCheckTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	got := NewChecker(50*time.Millisecond).Check(context.Background(), srv.URL)

	assert.Equal(t, Result{Status: Timeout}, got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCheckConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	got := NewChecker(time.Second).Check(context.Background(), "http://"+addr)

	assert.Equal(t, Error, got.Status)
	assert.NotEmpty(t, got.Message)
	assert.Zero(t, got.StatusCode)
}

func TestCheckInvalidURLMakesNoRequest(t *testing.T) {
	ct := &countingTransport{next: http.DefaultTransport}
	c := NewChecker(time.Second, WithTransport(ct))

	for _, raw := range []string{"not a url", "", "ftp://example.com/file", "/relative", "https://"} {
		got := c.Check(context.Background(), raw)
		assert.Equal(t, Error, got.Status, raw)
		assert.NotEmpty(t, got.Message, raw)
	}
	assert.Zero(t, ct.calls.Load())
}

func TestCheckParentCancellationIsError(t *testing.T) {
	srv := statusServer(t, http.StatusOK, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewChecker(time.Second).Check(ctx, srv.URL)

	assert.Equal(t, Error, got.Status)
	assert.Contains(t, got.Message, "canceled")
}

func TestNewCheckerDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewChecker(0).Timeout())
	assert.Equal(t, time.Second, NewChecker(time.Second).Timeout())
}

func TestResultIsTerminal(t *testing.T) {
	assert.False(t, Pending().IsTerminal())
	assert.False(t, Result{}.IsTerminal())
	assert.True(t, Result{Status: Offline, StatusCode: 404}.IsTerminal())
}
