package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inferoute/internal/api"
	"inferoute/internal/config"
)

// main launches inferouted.
func main() {
	os.Exit(run())
}

// run executes inferouted and returns an exit code.
func run() int {
	configPath := flag.String("config", "config.yaml", "path to inferouted config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	endpoints, err := config.LoadEndpoints(cfg.Endpoints.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "endpoints load error: %v\n", err)
		return 1
	}
	dispatchServer, err := config.NewServer(endpoints, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "server build error: %v\n", err)
		return 1
	}

	handler := api.NewHandler(api.Config{
		Server: dispatchServer,
		Now:    time.Now,
	})
	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	mux.Handle("/", handler)

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: mux,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	return 0
}
