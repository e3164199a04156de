package httpapi

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pitchdeck/internal/deck"
	"pitchdeck/internal/http/handlers"
	"pitchdeck/internal/imagegen"
	"pitchdeck/internal/retry"
)

func newTestRouter(t *testing.T, retryLimit int, trustProxy bool) http.Handler {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	client := imagegen.ClientFunc(func(ctx context.Context, req imagegen.Request) (*imagegen.Response, error) {
		return &imagegen.Response{Parts: []imagegen.Part{
			{InlineData: &imagegen.InlineData{MIMEType: "image/png", Data: buf.Bytes()}},
		}}, nil
	})
	d, err := deck.New(deck.DefaultSlides(), client, deck.Options{
		Policy: retry.Policy{MaxAttempts: 1},
		Sleep:  func(time.Duration) {},
	})
	if err != nil {
		t.Fatalf("deck.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
		d.Wait()
	})
	app := handlers.NewApp(d, "synthetic", "", zerolog.Nop())
	return NewRouter(app, RouterOptions{
		Logger:             zerolog.Nop(),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RetryLimitPerMin:   retryLimit,
		TrustProxyHeaders:  trustProxy,
	})
}

func TestRouterRoutes(t *testing.T) {
	h := newTestRouter(t, 10, false)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/v1/healthz", want: http.StatusOK},
		{method: http.MethodGet, path: "/v1/slides", want: http.StatusOK},
		{method: http.MethodGet, path: "/v1/slides/active", want: http.StatusOK},
		{method: http.MethodGet, path: "/v1/slides/4", want: http.StatusOK},
		{method: http.MethodGet, path: "/v1/slides/4/image", want: http.StatusAccepted},
		{method: http.MethodPost, path: "/v1/slides/4/retry", want: http.StatusConflict},
		{method: http.MethodGet, path: "/v1/unknown", want: http.StatusNotFound},
		{method: http.MethodDelete, path: "/v1/slides/active", want: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Fatalf("missing X-Request-ID header")
			}
		})
	}
}

func TestRouterRateLimitsRetry(t *testing.T) {
	h := newTestRouter(t, 2, false)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/slides/0/retry", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	want := []int{http.StatusConflict, http.StatusConflict, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/slides/0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("non-retry route limited: status %d", rec.Code)
	}
}

func TestRouterRetryLimitKeysOnConnection(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		want       []int
	}{
		{
			name:       "forwarded header ignored by default",
			trustProxy: false,
			want:       []int{http.StatusConflict, http.StatusTooManyRequests},
		},
		{
			name:       "forwarded header honoured behind a proxy",
			trustProxy: true,
			want:       []int{http.StatusConflict, http.StatusConflict},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(t, 1, tc.trustProxy)
			for i, xff := range []string{"203.0.113.1", "203.0.113.2"} {
				req := httptest.NewRequest(http.MethodPost, "/v1/slides/0/retry", nil)
				req.RemoteAddr = "198.51.100.10:4000"
				req.Header.Set("X-Forwarded-For", xff)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				if rec.Code != tc.want[i] {
					t.Fatalf("request %d status = %d, want %d", i+1, rec.Code, tc.want[i])
				}
			}
		})
	}
}
