package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/engine"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/store"
)

func newTestServer(t *testing.T, cache *store.Cache) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(Config{Cache: cache}, engine.New(config.DefaultConfig()), log)
}

func postForecast(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/forecast", bytes.NewReader(data))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok\n" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
}

func TestForecastOK(t *testing.T) {
	s := newTestServer(t, nil)
	w := postForecast(t, s, model.Request{
		OpeningBalance: 500,
		HorizonDays:    30,
		Seed:           42,
		AsOf:           "2025-06-30",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if id := w.Header().Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}

	var resp model.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Forecast) != 31 {
		t.Errorf("forecast length = %d, want 31", len(resp.Forecast))
	}
	if resp.Summary.OpeningBalance != 500 {
		t.Errorf("opening balance = %v, want 500", resp.Summary.OpeningBalance)
	}
	if resp.Alerts == nil || resp.Recommendations == nil {
		t.Error("alerts and recommendations must encode as arrays, not null")
	}
}

func TestForecastBadHorizon(t *testing.T) {
	s := newTestServer(t, nil)
	w := postForecast(t, s, model.Request{HorizonDays: 0})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body missing message")
	}
}

func TestForecastUnknownMethod(t *testing.T) {
	s := newTestServer(t, nil)
	w := postForecast(t, s, model.Request{HorizonDays: 30, Method: "prophet"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestForecastBadAsOf(t *testing.T) {
	s := newTestServer(t, nil)
	w := postForecast(t, s, model.Request{HorizonDays: 30, AsOf: "June 30th"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestForecastMalformedJSON(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/forecast", bytes.NewReader([]byte("{nope")))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestForecastUnknownField(t *testing.T) {
	s := newTestServer(t, nil)
	w := postForecast(t, s, map[string]any{"horizon_days": 30, "opening_blance": 500})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestForecastMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/forecast", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestForecastCacheHit(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	defer cache.Close()

	s := newTestServer(t, cache)
	req := model.Request{OpeningBalance: 500, HorizonDays: 14, Seed: 7, AsOf: "2025-06-30"}

	w := postForecast(t, s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	if w.Header().Get("X-Cache") == "hit" {
		t.Error("first request reported a cache hit")
	}

	w = postForecast(t, s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("second request status = %d", w.Code)
	}
	if w.Header().Get("X-Cache") != "hit" {
		t.Error("second identical request missed the cache")
	}
}
