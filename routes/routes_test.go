package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timerange/handlers"
	"timerange/middleware"
	"timerange/services/timerange"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := timerange.NewSessionService(nil, timerange.Defaults{Step: 30 * time.Minute, TicksNumber: 48, Location: time.UTC}, nil)
	hb := handlers.NewHandlerBundle(handlers.NewSessionHandler(sessions), handlers.NewBlockedHandler(nil), handlers.HealthHandler)
	r := gin.New()
	RegisterRoutes(r, hb, middleware.RateLimitMiddleware(1, 2))
	return r
}

func serve(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDragRoutesAreRateLimited(t *testing.T) {
	r := newRouter()
	for i := range 2 {
		if w := serve(r, http.MethodPost, "/api/sessions/missing/drag/start", nil); w.Code != http.StatusNotFound {
			t.Fatalf("request %d: got %d, want 404", i, w.Code)
		}
	}
	if w := serve(r, http.MethodPost, "/api/sessions/missing/drag/move", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("got %d, want 429", w.Code)
	}
	// reads are not limited
	for range 3 {
		if w := serve(r, http.MethodGet, "/api/sessions/missing", nil); w.Code != http.StatusNotFound {
			t.Errorf("get: %d", w.Code)
		}
	}
}

func TestSessionCreationIsRateLimited(t *testing.T) {
	r := newRouter()
	for i := range 2 {
		if w := serve(r, http.MethodPost, "/api/sessions", http.Header{"Content-Type": {"application/json"}}); w.Code != http.StatusBadRequest && w.Code != http.StatusCreated {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}
	if w := serve(r, http.MethodPost, "/api/sessions", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("got %d, want 429", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter()
	w := serve(r, http.MethodOptions, "/api/sessions", http.Header{
		"Origin":                        {"http://picker.example"},
		"Access-Control-Request-Method": {"POST"},
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestHealthAndTicksRegistered(t *testing.T) {
	r := newRouter()
	if w := serve(r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/ticks?start=2024-06-03T00:00:00Z&end=2024-06-04T00:00:00Z", nil); w.Code != http.StatusOK {
		t.Errorf("ticks: %d %s", w.Code, w.Body)
	}
}
