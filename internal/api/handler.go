package api

import (
	"net/http"
	"time"

	"inferoute/pkg/dispatch"
)

// Config wires dependencies for the HTTP handler.
type Config struct {
	Server *dispatch.Server
	Now    func() time.Time
}

// NewHandler builds an HTTP handler for the dispatch API.
func NewHandler(cfg Config) http.Handler {
	h := &handler{
		server: cfg.Server,
		nowFn:  cfg.Now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/receive", h.handleReceive)
	mux.HandleFunc("/v1/admin/endpoints", h.handleAdminEndpoints)
	mux.HandleFunc("/v1/admin/endpoints/", h.handleAdminEndpointByRoute)
	return mux
}

type handler struct {
	server *dispatch.Server
	nowFn  func() time.Time
}

func (h *handler) now() time.Time {
	if h.nowFn != nil {
		return h.nowFn()
	}
	return time.Now()
}
