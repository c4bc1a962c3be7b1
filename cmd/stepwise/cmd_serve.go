package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/stepwise"
	"github.com/njchilds90/stepwise/internal/config"
)

var serveAddr string

// serveCmd exposes the tools over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool endpoint over HTTP",
	Long: `Starts the HTTP tool server.

  POST /tool   execute a tool call {"tool": "...", "params": {...}}
  GET  /schema tool schema for agent registration
  GET  /health liveness check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

const requestIDHeader = "X-Request-ID"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newMux wires the tool endpoints around h.
func newMux(h *stepwise.ToolHandler, log *zap.Logger, maxBodyBytes int64) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		reqLog := log.With(zap.String("request_id", id))

		defer func() {
			if rec := recover(); rec != nil {
				reqLog.Error("panic in /tool", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req stepwise.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		start := time.Now()
		resp := h.Handle(req)
		reqLog.Info("tool call",
			zap.String("tool", req.Tool),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error_kind", resp.Kind),
		)
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stepwise.MCPToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux
}

func newServer(c *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              c.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: config.Duration(c.Server.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       config.Duration(c.Server.ReadTimeout, 15*time.Second),
		WriteTimeout:      config.Duration(c.Server.WriteTimeout, 15*time.Second),
		IdleTimeout:       config.Duration(c.Server.IdleTimeout, 60*time.Second),
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	h := &stepwise.ToolHandler{Render: cfg.RenderOptions(), Solve: cfg.SolveOptions()}
	srv := newServer(cfg, newMux(h, logger, cfg.Server.MaxBodyBytes))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stepwise tool server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stepwise tool server stopped")
	return nil
}
