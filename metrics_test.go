package geoguess

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordSearch(t *testing.T) {
	store := NewStore(
		NewBoundary("West", []Point{{Lat: 0, Lng: 0}}),
		NewBoundary("East", []Point{{Lat: 0, Lng: 1}}),
		NewBoundary("Far", []Point{{Lat: 0, Lng: 90}}),
	)
	m := NewMetrics()
	s := newTestSolver(t, store, WithMetrics(m))

	// ~111 km away: three expansions from a margin of 9 km.
	if _, err := s.Query("West", 100, 9); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Query("West", 100, 9); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(m.cacheMisses); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
	// 4 scans per query, 2 pairs per scan, minus the 2 first-time misses.
	if got := testutil.ToFloat64(m.cacheHits); got != 14 {
		t.Errorf("cache hits = %v, want 14", got)
	}
	if got := testutil.ToFloat64(m.expansions); got != 6 {
		t.Errorf("expansions = %v, want 6", got)
	}
	if got := testutil.ToFloat64(m.searches.WithLabelValues("found")); got != 2 {
		t.Errorf("found searches = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.computeDuration); got != 1 {
		t.Errorf("compute histogram series = %d, want 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.cacheHit()
	m.observeSearch(Result{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"geoguess_distance_cache_hits_total 1",
		`geoguess_searches_total{outcome="exhausted"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.cacheHit()
	m.cacheMiss()
	m.observeExpansion()
	m.observeSearch(Result{Iterations: 1})
}
