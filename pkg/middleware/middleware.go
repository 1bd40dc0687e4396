// Package middleware provides net/http middleware around the urltree codec:
// route-URL parsing with context injection, Prometheus metrics, and
// OpenTelemetry tracing.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/urltree"
)

// treeContextKey is the key for storing the parsed tree in the request
// context.
type treeContextKey struct{}

// Config configures the RouteTree middleware.
type Config struct {
	// Logger receives a debug record for every rejected URL.
	// Default: slog.Default().
	Logger *slog.Logger

	// ErrorHandler is invoked when the request URL cannot be parsed.
	// Default: 400 Bad Request with a plain-text body.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Option configures the RouteTree middleware.
type Option func(*Config)

// WithLogger sets the logger for rejected URLs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithErrorHandler sets the handler invoked on parse failure.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

func defaultConfig() Config {
	return Config{
		Logger: slog.Default(),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "malformed route url", http.StatusBadRequest)
		},
	}
}

// RouteTree creates middleware that parses every request URL into a
// *urltree.Tree and stores it in the request context for downstream
// handlers. Requests whose URL does not parse are rejected before the next
// handler runs.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RouteTree())
//	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
//	    tree, _ := middleware.TreeFromContext(r.Context())
//	    fmt.Fprintln(w, tree)
//	})
func RouteTree(opts ...Option) func(http.Handler) http.Handler {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawURL := r.URL.RequestURI()

			start := time.Now()
			tree, err := urltree.Parse(rawURL)
			recordParse(time.Since(start), err)

			if err != nil {
				config.Logger.Debug("route url rejected", "url", rawURL, "error", err)
				config.ErrorHandler(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), treeContextKey{}, tree)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TreeFromContext retrieves the route tree parsed by RouteTree. The second
// return value is false when the request did not pass through RouteTree.
func TreeFromContext(ctx context.Context) (*urltree.Tree, bool) {
	tree, ok := ctx.Value(treeContextKey{}).(*urltree.Tree)
	return tree, ok
}

// statusRecorder captures the response status for metrics and tracing.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) recordedStatus() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
