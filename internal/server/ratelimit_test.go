package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	t.Parallel()

	rl, stop := newRateLimiter(1, 3, testLogger())
	defer stop()

	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	t.Parallel()

	rl, stop := newRateLimiter(1, 2, testLogger())
	defer stop()

	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		h.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d, want 429", last)
	}
}

func TestRateLimiter_PerIPIsolation(t *testing.T) {
	t.Parallel()

	rl, stop := newRateLimiter(1, 1, testLogger())
	defer stop()

	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the first IP's bucket.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		h.ServeHTTP(rec, req)
	}

	// A different IP still has its own full bucket.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second IP: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_Eviction(t *testing.T) {
	t.Parallel()

	rl, stop := newRateLimiter(1, 1, testLogger())
	defer stop()

	rl.getLimiter("10.0.0.5")
	rl.mu.Lock()
	rl.limiters["10.0.0.5"].lastSeen = time.Now().Add(-10 * time.Minute)
	rl.mu.Unlock()

	rl.evict()

	rl.mu.Lock()
	_, ok := rl.limiters["10.0.0.5"]
	rl.mu.Unlock()
	if ok {
		t.Error("stale limiter entry was not evicted")
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr string
		want string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:8080", "[::1]"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.addr
		if got := clientIP(req); got != tc.want {
			t.Errorf("clientIP(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
