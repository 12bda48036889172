package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/api"
	"energy_dashboard/internal/ws"
)

var (
	serveAddr        string
	serveFrontendDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	Long: `Builds the analysis once at startup and serves it read-only: JSON queries
under /api, dashboard updates on /ws, Prometheus metrics on /metrics and the
frontend build (if present) on /.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveFrontendDir, "frontend-dir", "", "directory containing frontend build (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveFrontendDir != "" {
		cfg.Server.FrontendDir = serveFrontendDir
	}

	snapshot, err := buildSnapshot(cfg, log)
	if err != nil {
		return err
	}

	hub := ws.NewHub(log)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newMux(snapshot, hub, cfg.Server.FrontendDir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// newMux wires every route onto one ServeMux.
func newMux(snapshot *analysis.Snapshot, hub *ws.Hub, frontendDir string, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", ws.NewHandler(hub, snapshot, log))
	mux.Handle("/api/", adaptor.FiberApp(api.NewApp(api.NewHandler(snapshot, log), log)))
	mux.Handle("GET /metrics", promhttp.Handler())

	if _, err := os.Stat(frontendDir); err == nil {
		log.Info("Serving frontend", zap.String("dir", frontendDir))
		mux.Handle("/", http.FileServer(http.Dir(frontendDir)))
	}

	return mux
}
