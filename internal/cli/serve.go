package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inferoute/internal/api"
	"inferoute/internal/config"
)

// serveAPI is a test seam for running the HTTP server.
var serveAPI = serveHTTP

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		addr := fs.String("addr", "127.0.0.1:8080", "Address to listen on")
		endpointsPath := fs.String("endpoints", "", "Path to endpoints file")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *endpointsPath == "" {
			fmt.Fprintln(stderr, "Missing --endpoints")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		endpoints, err := config.LoadEndpoints(*endpointsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load endpoints: %v\n", err)
			return ExitError
		}
		server, err := config.NewServer(endpoints, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build server: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Serving dispatch API at http://%s\n", *addr)
		if err := serveAPI(context.Background(), *addr, api.NewHandler(api.Config{Server: server, Now: time.Now})); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// serveHTTP runs an HTTP server until the context or a signal stops it.
func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	mux.Handle("/", handler)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	return serveErr
}
