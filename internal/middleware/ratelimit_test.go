package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestRateLimiter_AllowsWithinLimit verifica que requisições dentro do
// burst passam.
func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(1),
		GeneralBurst:    3,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = "10.0.0.1:51000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

// TestRateLimiter_RejectsOverLimit verifica a resposta 429 com
// Retry-After quando o burst esgota.
func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(0.01),
		GeneralBurst:    1,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	first.RemoteAddr = "10.0.0.2:51000"
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	second.RemoteAddr = "10.0.0.2:51000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, second)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("response should carry a Retry-After header")
	}
}

// TestRateLimiter_IsolatesClients verifica que clientes distintos têm
// limitadores independentes.
func TestRateLimiter_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(0.01),
		GeneralBurst:    1,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	a := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	a.RemoteAddr = "10.0.0.3:51000"
	handler.ServeHTTP(httptest.NewRecorder(), a)

	b := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	b.RemoteAddr = "10.0.0.4:51000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, b)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for a different client", w.Code, http.StatusOK)
	}
	if rl.LimiterCount() != 2 {
		t.Errorf("LimiterCount() = %d, want 2", rl.LimiterCount())
	}
}
