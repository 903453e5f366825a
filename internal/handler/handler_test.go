package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace/noop"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(st *store.Store) *gin.Engine {
	tracer := noop.NewTracerProvider().Tracer("test")
	h := New(tracer, st, NewHub(st))
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response for %s %s: %v", method, path, err)
	}
	return w, body
}

func TestHealth(t *testing.T) {
	r := newTestRouter(store.New(store.Seed{}))
	w, body := doRequest(t, r, http.MethodGet, "/health")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", w.Code, body)
	}
}

func TestGetSignalsReflectsStoreState(t *testing.T) {
	st := store.New(store.Seed{})
	st.Dispatch(store.SignalsRequested{})
	st.Dispatch(store.SignalsLoaded{Signals: []domain.Signal{{ID: "sig-1", Asset: "EURUSD"}}})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodGet, "/api/state/signals")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["loading"] != false || body["error"] != "" {
		t.Fatalf("unexpected slice flags: %v", body)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data payload: %v", body["data"])
	}
}

func TestGetAnalyticsIncludesTimeRange(t *testing.T) {
	st := store.New(store.Seed{})
	st.Dispatch(store.AnalyticsRequested{Range: domain.Range90D})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodGet, "/api/state/analytics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["timeRange"] != string(domain.Range90D) {
		t.Fatalf("timeRange = %v", body["timeRange"])
	}
	if body["loading"] != true {
		t.Fatal("expected loading true while a fetch is pending")
	}
}

func TestGetThemeReportsSeed(t *testing.T) {
	st := store.New(store.Seed{Theme: domain.ThemeDark})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodGet, "/api/state/theme")
	if w.Code != http.StatusOK || body["mode"] != "dark" {
		t.Fatalf("unexpected theme response: %d %v", w.Code, body)
	}
}

func TestRefreshDispatchesRequestEvent(t *testing.T) {
	st := store.New(store.Seed{})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodPost, "/api/refresh/signals")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if !st.State().Signals.Loading {
		t.Fatal("refresh should flip the slice into loading")
	}
}

func TestRefreshAnalyticsDefaultsTo30Days(t *testing.T) {
	st := store.New(store.Seed{})
	r := newTestRouter(st)

	w, _ := doRequest(t, r, http.MethodPost, "/api/refresh/analytics")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d", w.Code)
	}
	if got := st.State().Analytics.TimeRange; got != domain.Range30D {
		t.Fatalf("expected default range 30d, got %q", got)
	}
}

func TestRefreshAnalyticsRejectsInvalidRange(t *testing.T) {
	st := store.New(store.Seed{})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodPost, "/api/refresh/analytics?range=2w")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if st.State().Analytics.Loading {
		t.Fatal("invalid range must not dispatch a request")
	}
}

func TestRefreshUnknownCategory(t *testing.T) {
	st := store.New(store.Seed{})
	r := newTestRouter(st)

	w, body := doRequest(t, r, http.MethodPost, "/api/refresh/widgets")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["error"] == "" {
		t.Fatal("expected an error message")
	}
}
