package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ai-task-manager/pkg/log"
)

func newEngine(mw Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", handlers...)
	return r
}

func TestRequestID(t *testing.T) {
	var seen string
	mw := New(log.NewNop(), Config{})
	r := newEngine(mw, mw.RequestID(), func(c *gin.Context) {
		seen = log.RequestIDFromContext(c.Request.Context())
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		got := w.Header().Get(HeaderRequestID)
		if got == "" {
			t.Fatal("expected a generated request id")
		}
		if seen != got {
			t.Errorf("context id %q != header id %q", seen, got)
		}
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Header().Get(HeaderRequestID) != "abc-123" || seen != "abc-123" {
			t.Errorf("expected abc-123, got header=%q ctx=%q", w.Header().Get(HeaderRequestID), seen)
		}
	})
}

func TestAIRateLimit(t *testing.T) {
	mw := New(log.NewNop(), Config{AIPerMin: 6})
	r := newEngine(mw, mw.AIRateLimit())

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", code)
	}
}

func TestAIRateLimitDisabled(t *testing.T) {
	mw := New(log.NewNop(), Config{})
	r := newEngine(mw, mw.AIRateLimit())

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}
}

func TestTelegramSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"no secret configured", "", "", http.StatusOK},
		{"matching secret", "s3cret", "s3cret", http.StatusOK},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong header", "s3cret", "nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := New(log.NewNop(), Config{TelegramSecret: tt.secret})
			r := newEngine(mw, mw.TelegramSecret())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderTelegramSecret, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAccessLogDoesNotAlterResponse(t *testing.T) {
	mw := New(log.NewNop(), Config{})
	r := newEngine(mw, mw.RequestID(), mw.AccessLog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
	}
}
