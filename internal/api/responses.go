package api

import (
	"encoding/json"
	"net/http"

	"inferoute/pkg/dispatch"
)

type errorResponse struct {
	Error        string `json:"error"`
	RetryAfterMs *int64 `json:"retry_after_ms,omitempty"`
}

type snapshotsResponse struct {
	Endpoints []dispatch.Snapshot `json:"endpoints"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeErrorResponse(w, status, errorResponse{Error: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, payload errorResponse) {
	writeBytes(w, status, mustJSON(payload))
}

func writeHeaderResponse(w http.ResponseWriter, status int, payload dispatch.Header) {
	writeBytes(w, status, mustJSON(payload))
}

func writeSnapshotResponse(w http.ResponseWriter, status int, payload dispatch.Snapshot) {
	writeBytes(w, status, mustJSON(payload))
}

func writeSnapshotsResponse(w http.ResponseWriter, status int, payload snapshotsResponse) {
	writeBytes(w, status, mustJSON(payload))
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func mustJSON(payload any) []byte {
	data, _ := json.Marshal(payload)
	return data
}
