package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient skips the safe dialer so tests can reach httptest servers.
func testClient(retryMax int) *HTTPClient {
	return newHTTPClient(Config{Timeout: 2 * time.Second, MaxRedirects: 5, RetryMax: retryMax}, http.DefaultTransport)
}

func TestHTTPClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Hello</body></html>"))
	}))
	defer ts.Close()

	page, err := testClient(0).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, ts.URL, page.URL)
	assert.Equal(t, "<html><body>Hello</body></html>", page.HTML)
}

func TestHTTPClient_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<p>moved</p>"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	page, err := testClient(0).Fetch(context.Background(), ts.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/new", page.URL)
	assert.Equal(t, "<p>moved</p>", page.HTML)
}

func TestHTTPClient_Fetch_DecodesDeclaredCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer ts.Close()

	page, err := testClient(0).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", page.HTML)
}

func TestHTTPClient_Fetch_ErrorStatusIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	page, err := testClient(0).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
}

func TestHTTPClient_Fetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	page, err := testClient(2).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_Fetch_InvalidURL(t *testing.T) {
	_, err := testClient(0).Fetch(context.Background(), "://bad-url")
	require.Error(t, err)
}

func TestHTTPClient_Fetch_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(0).Fetch(ctx, ts.URL)
	require.Error(t, err)
}

func TestHTTPClient_Fetch_BlocksLoopback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, err := NewHTTPClient(Config{}).Fetch(context.Background(), ts.URL)
	require.Error(t, err)
}

func TestHTTPClient_FetchRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	got := testClient(0).FetchRobots(context.Background(), ts.URL+"/blog/post?x=1")
	assert.Equal(t, "User-agent: *\nDisallow: /private\n", got)
}

func TestHTTPClient_FetchRobots_FailuresYieldEmpty(t *testing.T) {
	missing := httptest.NewServer(http.NotFoundHandler())
	defer missing.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"not found", missing.URL + "/page"},
		{"connection refused", closedURL + "/page"},
		{"no host", "/relative/path"},
		{"malformed", "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, testClient(0).FetchRobots(context.Background(), tt.url))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		contentType string
		want        string
	}{
		{"utf-8 passthrough", "<p>héllo</p>", "", "<p>héllo</p>"},
		{"header charset", "<p>caf\xe9</p>", "text/html; charset=windows-1252", "<p>café</p>"},
		{"meta charset", `<meta charset="iso-8859-1"><p>caf` + "\xe9</p>", "text/html", `<meta charset="iso-8859-1"><p>café</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode([]byte(tt.data), tt.contentType))
		})
	}
}
