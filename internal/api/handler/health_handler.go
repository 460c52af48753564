package handler

import (
	"context"
	"net/http"

	"client_portal/internal/common"
	"client_portal/internal/platform/database"
)

// ClusterStatus is implemented by database.Cluster.
type ClusterStatus interface {
	Health(ctx context.Context) []database.PoolHealth
	Stats() []database.PoolStats
}

type HealthHandler struct {
	cluster ClusterStatus
}

func NewHealthHandler(cluster ClusterStatus) *HealthHandler {
	return &HealthHandler{cluster: cluster}
}

// Database reports per-pool liveness. The response is 200 even when a
// pool is down: one unhealthy pool must not mask the other's result, and
// the operator reads the sub-results to tell primary from replica.
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	results := h.cluster.Health(r.Context())

	healthy := true
	for _, res := range results {
		if !res.Healthy {
			healthy = false
		}
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"healthy": healthy,
		"pools":   results,
	})
}

// Connections is admin-only: a point-in-time snapshot of pool saturation.
func (h *HealthHandler) Connections(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pools": h.cluster.Stats(),
	})
}
