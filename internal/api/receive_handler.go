package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inferoute/pkg/dispatch"
)

// receiveRequest is the wire form of an admission attempt.
type receiveRequest struct {
	Route     string `json:"route"`
	ID        string `json:"id"`
	TokenCost uint64 `json:"token_cost"`
}

func (h *handler) handleReceive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.server == nil {
		writeError(w, http.StatusInternalServerError, "server_unavailable")
		return
	}
	var req receiveRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if strings.TrimSpace(req.Route) == "" || strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	header, err := h.server.Receive(req.Route, dispatch.Request{ID: req.ID, TokenCost: req.TokenCost})
	if err != nil {
		h.writeReceiveError(w, req, err)
		return
	}
	writeHeaderResponse(w, http.StatusOK, header)
}

// writeReceiveError maps admission failures to their HTTP shape. Limit
// rejections carry a retry hint when waiting can ever help.
func (h *handler) writeReceiveError(w http.ResponseWriter, req receiveRequest, err error) {
	var unknownErr *dispatch.UnknownRouteError
	if errors.As(err, &unknownErr) {
		writeError(w, http.StatusNotFound, "unknown_route")
		return
	}
	kind := dispatch.KindOf(err)
	if kind == dispatch.LimitNone {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	payload := errorResponse{Error: string(kind)}
	if endpoint, ok := h.server.Endpoint(req.Route); ok {
		if delay, ok := endpoint.NextAdmitDelay(req.TokenCost); ok {
			ms := delay.Milliseconds()
			payload.RetryAfterMs = &ms
		}
	}
	writeErrorResponse(w, http.StatusTooManyRequests, payload)
}
