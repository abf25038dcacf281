package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"futsal/pkg/client"
	"futsal/pkg/config"
	httputil "futsal/pkg/http"
	"futsal/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterHandler struct {
	creates atomic.Int32
}

func (h *counterHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_ = httputil.WriteMessage(w, "pong")
	})
	router.POST("/things", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		n := h.creates.Add(1)
		_ = httputil.WriteCreated(w, map[string]int32{"n": n}, "created")
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                "3000",
		CORSAllowedOrigins:  []string{"*"},
		RateLimitRequests:   5,
		RateLimitWindow:     time.Minute,
		RateLimitMaxClients: 100,
		RequestTimeout:      time.Second,
		IdempotencyTTL:      time.Minute,
		MaxRequestSize:      1024,
		ShutdownTimeout:     time.Second,
		Log:                 logger.Discard(),
		Client:              client.NewClient(),
	}
}

func newTestApp(t *testing.T) (http.Handler, *counterHandler) {
	t.Helper()
	h := &counterHandler{}
	a := NewApplication(testConfig())
	a.SetApp(h)
	t.Cleanup(a.idempotencyStore.Stop)
	return a.Handler(), h
}

func do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := do(handler, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(handler, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestAppRoutes_MiddlewareStack(t *testing.T) {
	handler, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := do(handler, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(handler, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)

	rec = do(handler, httptest.NewRequest(http.MethodDelete, "/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec = do(handler, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestAppRoutes_IdempotentReplay(t *testing.T) {
	handler, h := newTestApp(t)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "k-1")
		return do(handler, req)
	}

	first := post()
	second := post()
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), h.creates.Load())
}

func TestAppRoutes_RateLimited(t *testing.T) {
	handler, _ := newTestApp(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		last = do(handler, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	// Health checks are outside the limiter.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, http.StatusOK, do(handler, req).Code)
}
