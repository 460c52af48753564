package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"client_portal/internal/platform/database"
)

type fakeClusterStatus struct {
	healthFn func(ctx context.Context) []database.PoolHealth
	statsFn  func() []database.PoolStats
}

func (f *fakeClusterStatus) Health(ctx context.Context) []database.PoolHealth {
	return f.healthFn(ctx)
}

func (f *fakeClusterStatus) Stats() []database.PoolStats {
	return f.statsFn()
}

func TestHealthDatabaseMixedPools(t *testing.T) {
	probeErr := "dial tcp: connection refused"
	cluster := &fakeClusterStatus{healthFn: func(ctx context.Context) []database.PoolHealth {
		return []database.PoolHealth{
			{Pool: database.PoolPrimary, Healthy: true, LatencyMs: 2},
			{Pool: database.PoolReplica, Healthy: false, Error: &probeErr},
		}
	}}

	rec := httptest.NewRecorder()
	NewHealthHandler(cluster).Database(rec, httptest.NewRequest(http.MethodGet, "/api/health/database", nil))

	// A down pool must not turn the endpoint into an error response; the
	// caller reads the per-pool results to tell primary from replica.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Healthy bool                  `json:"healthy"`
		Pools   []database.PoolHealth `json:"pools"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Healthy {
		t.Error("expected overall healthy=false with one pool down")
	}
	if len(resp.Pools) != 2 {
		t.Fatalf("expected 2 pool results, got %d", len(resp.Pools))
	}
	if !resp.Pools[0].Healthy || resp.Pools[0].Pool != database.PoolPrimary {
		t.Errorf("unexpected primary result %+v", resp.Pools[0])
	}
	if resp.Pools[1].Healthy || resp.Pools[1].Error == nil {
		t.Errorf("expected replica failure detail, got %+v", resp.Pools[1])
	}
}

func TestHealthDatabaseAllHealthy(t *testing.T) {
	cluster := &fakeClusterStatus{healthFn: func(ctx context.Context) []database.PoolHealth {
		return []database.PoolHealth{
			{Pool: database.PoolPrimary, Healthy: true, LatencyMs: 1},
			{Pool: database.PoolReplica, Healthy: true, LatencyMs: 1},
		}
	}}

	rec := httptest.NewRecorder()
	NewHealthHandler(cluster).Database(rec, httptest.NewRequest(http.MethodGet, "/api/health/database", nil))

	var resp struct {
		Healthy bool `json:"healthy"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Healthy {
		t.Error("expected overall healthy=true")
	}
}

func TestHealthConnections(t *testing.T) {
	cluster := &fakeClusterStatus{statsFn: func() []database.PoolStats {
		return []database.PoolStats{
			{Pool: database.PoolPrimary, Open: 4, InUse: 1, Idle: 3, MaxOpen: 20},
			{Pool: database.PoolReplica, Open: 2, InUse: 0, Idle: 2, MaxOpen: 20},
		}
	}}

	rec := httptest.NewRecorder()
	NewHealthHandler(cluster).Connections(rec, httptest.NewRequest(http.MethodGet, "/api/health/connections", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Pools []database.PoolStats `json:"pools"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Pools) != 2 || resp.Pools[0].Open != 4 {
		t.Errorf("unexpected stats %+v", resp.Pools)
	}
}
