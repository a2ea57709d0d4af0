package api

import (
	"net/http"
	"strings"
)

func (h *handler) handleAdminEndpoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.server == nil {
		writeError(w, http.StatusInternalServerError, "server_unavailable")
		return
	}
	writeSnapshotsResponse(w, http.StatusOK, snapshotsResponse{Endpoints: h.server.Snapshots()})
}

func (h *handler) handleAdminEndpointByRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.server == nil {
		writeError(w, http.StatusInternalServerError, "server_unavailable")
		return
	}
	route := strings.TrimPrefix(r.URL.Path, "/v1/admin/endpoints")
	if route == "" || route == "/" {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	endpoint, ok := h.server.Endpoint(route)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_route")
		return
	}
	writeSnapshotResponse(w, http.StatusOK, endpoint.Snapshot())
}
