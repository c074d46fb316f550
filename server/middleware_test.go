package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/giygas/kits-report-api/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		path         string
		expectedCost int64
	}{
		{"/metrics", 0},
		{"/health", 5},
		{"/v1/pharmacies", 5},
		{"/v1/quality", 5},
		{"/v1/summary", 20},
		{"/v1/pivot", 20},
		{"/v1/chart", 20},
		{"/v1/records", 30},
		{"/v1/dashboard", 50},
		{"/unknown", 20},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if got := getTokenCost(req); got != tt.expectedCost {
				t.Errorf("getTokenCost(%s) = %d, want %d", tt.path, got, tt.expectedCost)
			}
		})
	}
}

func TestRateLimitExceeded(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	handler := rl.Middleware(okHandler)

	// capacity 1000 at cost 50 allows 20 requests
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.RemoteAddr = "10.0.0.1:5001"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if !strings.Contains(rr.Body.String(), `"code":429`) {
		t.Errorf("Expected JSON error body, got %s", rr.Body.String())
	}

	// another client has its own bucket
	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for a different client, got %d", rr.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	rl.getBucket("10.0.0.1").TakeAvailable(100)
	rl.getBucket("10.0.0.2")

	if got := testutil.ToFloat64(metrics.RateLimiterBucketsTotal); got != 2 {
		t.Errorf("Expected gauge 2, got %v", got)
	}

	if removed := rl.cleanup(); removed != 1 {
		t.Errorf("Expected 1 idle bucket removed, got %d", removed)
	}
	if len(rl.clients) != 1 {
		t.Errorf("Expected 1 tracked client, got %d", len(rl.clients))
	}
	if got := testutil.ToFloat64(metrics.RateLimiterBucketsTotal); got != 1 {
		t.Errorf("Expected gauge 1, got %v", got)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	cfg := testConfig()
	handler := RequestSizeMiddleware(cfg)(okHandler)

	t.Run("small request passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/summary", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rr.Code)
		}
	})

	t.Run("large body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/summary", strings.NewReader(strings.Repeat("x", 2048)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected 413, got %d", rr.Code)
		}
	})

	t.Run("large headers rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/summary", nil)
		req.Header.Set("X-Padding", strings.Repeat("a", 5000))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusRequestHeaderFieldsTooLarge {
			t.Errorf("Expected 431, got %d", rr.Code)
		}
	})
}
