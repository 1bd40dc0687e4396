package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/urltree"
	"github.com/vango-dev/urltree/pkg/middleware"
)

func serveCmd() *cobra.Command {
	var (
		addr            string
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the route URL inspector server",
		Long: `Run an HTTP server exposing the codec over a small API.

Endpoints:
  GET /parse?url=...                         parse a route URL, return JSON tree
  GET /canonical?url=...                     return the canonical serialization
  GET /contains?container=...&containee=...  containment check (&exact=true)
  GET /metrics                               Prometheus metrics
  GET /ws                                    WebSocket inspector; send a route
                                             URL, receive its parsed tree

Examples:
  urltree serve
  urltree serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, shutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	return cmd
}

func runServe(addr string, shutdownTimeout time.Duration) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	r := chi.NewRouter()
	r.Use(middleware.Prometheus())
	r.Use(middleware.RouteTree(middleware.WithLogger(logger)))
	r.Use(middleware.OpenTelemetry())

	r.Get("/parse", handleParse)
	r.Get("/canonical", handleCanonical)
	r.Get("/contains", handleContains)
	r.Get("/ws", handleWS(logger))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inspector listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseURLParam(w http.ResponseWriter, r *http.Request) (*urltree.Tree, bool) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return nil, false
	}
	tree, err := urltree.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return nil, false
	}
	return tree, true
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	tree, ok := parseURLParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, treeToJSON(tree))
}

func handleCanonical(w http.ResponseWriter, r *http.Request) {
	tree, ok := parseURLParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"canonical": tree.String()})
}

func handleContains(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	container, err := urltree.Parse(q.Get("container"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf("container: %s", err)})
		return
	}
	containee, err := urltree.Parse(q.Get("containee"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf("containee: %s", err)})
		return
	}
	exact, _ := strconv.ParseBool(q.Get("exact"))

	writeJSON(w, http.StatusOK, map[string]bool{
		"contains": urltree.ContainsTree(container, containee, exact),
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The inspector is a local debugging tool.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsResult is one inspector response: the parsed tree or a parse error.
type wsResult struct {
	URL       string    `json:"url"`
	Tree      *treeJSON `json:"tree,omitempty"`
	Canonical string    `json:"canonical,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// handleWS upgrades the connection and parses each incoming text message as
// a route URL, writing the result back as JSON.
func handleWS(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					logger.Error("websocket read error", "error", err)
				}
				return
			}

			result := wsResult{URL: string(msg)}
			if tree, err := urltree.Parse(string(msg)); err != nil {
				result.Error = err.Error()
			} else {
				t := treeToJSON(tree)
				result.Tree = &t
				result.Canonical = tree.String()
			}

			if err := conn.WriteJSON(result); err != nil {
				logger.Error("websocket write error", "error", err)
				return
			}
		}
	}
}
