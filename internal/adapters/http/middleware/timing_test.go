package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymtracker/internal/adapters/http/perf"
)

// TestTimingEmitsEntry verifies that a request entry is recorded.
func TestTimingEmitsEntry(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/members", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 1 {
		t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
	}
}

// TestTimingSkipsStatic verifies static assets are excluded from timing.
func TestTimingSkipsStatic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (static excluded)", collector.TotalRecorded())
	}
}

// TestTimingSkipsEventStream verifies the SSE endpoint is excluded: its
// duration is the connection lifetime, not a request cost.
func TestTimingSkipsEventStream(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (event stream excluded)", collector.TotalRecorded())
	}
}

// TestTimingEntryFields verifies the recorded entry has correct method, path, status.
func TestTimingEntryFields(t *testing.T) {
	collector := perf.NewCollector(1)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/members", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	if snap.SlowestPaths[0].Path != "POST /api/members" {
		t.Errorf("Path = %q, want \"POST /api/members\"", snap.SlowestPaths[0].Path)
	}
}

// TestTimingNilCollector verifies middleware works without a collector.
func TestTimingNilCollector(t *testing.T) {
	handler := Timing(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/members", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTimingPoolNoStateLeak verifies statusWriter pool reuse does not leak
// status codes between requests.
func TestTimingPoolNoStateLeak(t *testing.T) {
	collector := perf.NewCollector(100)

	handler500 := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	rr1 := httptest.NewRecorder()
	handler500.ServeHTTP(rr1, httptest.NewRequest("GET", "/api/fail", nil))
	if rr1.Code != 500 {
		t.Errorf("request 1 status = %d, want 500", rr1.Code)
	}

	// Second request never calls WriteHeader; a leaky pool would surface 500.
	handler200 := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	rr2 := httptest.NewRecorder()
	handler200.ServeHTTP(rr2, httptest.NewRequest("GET", "/api/ok", nil))
	if rr2.Code != 200 {
		t.Errorf("request 2 status = %d, want 200", rr2.Code)
	}
}
