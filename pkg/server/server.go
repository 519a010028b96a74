package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ssr"
	"github.com/vango-dev/ssr/pkg/cache"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/registry"
	"github.com/vango-dev/ssr/pkg/vdom"
)

const (
	// DefaultTracerName is the tracer used when none is configured.
	DefaultTracerName = "vango-ssr"

	// DefaultMetricsNamespace prefixes every metric name.
	DefaultMetricsNamespace = "vango_ssr"

	// MaxBodyBytes bounds the props document of a render request.
	MaxBodyBytes = 1 << 20

	// unknownTag labels metrics for requests naming an unregistered tag.
	unknownTag = "unknown"
)

// Renderer renders a component to markup. *ssr.Renderer implements it.
type Renderer interface {
	RenderComponent(tagName string, ctor vdom.Constructor, props ...host.Prop) (string, error)
}

// Server is the HTTP render service.
type Server struct {
	registry *registry.Registry
	renderer Renderer
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	tracer   trace.Tracer

	promRegistry *prometheus.Registry
	metrics      *Metrics

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRenderer sets the renderer. Default: ssr.New with the server logger.
func WithRenderer(r Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithCache enables render caching. ttl <= 0 caches without expiry.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer sets the tracer. Default: otel.Tracer(DefaultTracerName) from
// the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// WithPrometheusRegistry sets the registry metrics are registered with and
// served from. Default: a fresh registry with Go and process collectors.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.promRegistry = reg
	}
}

// New creates a Server rendering components from reg.
func New(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		cache:    cache.Nop{},
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		s.renderer = ssr.New(ssr.WithLogger(s.logger))
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(DefaultTracerName)
	}
	if s.promRegistry == nil {
		s.promRegistry = newRegistry()
	}
	s.metrics = newMetrics(s.promRegistry, DefaultMetricsNamespace)

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/render/{tag}", s.handleRender)
	r.Get("/components", s.handleComponents)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("render server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("render server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}
