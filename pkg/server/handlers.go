package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/cache"
	"github.com/vango-dev/ssr/pkg/props"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	ctx, span := s.tracer.Start(r.Context(), "render "+tag,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("ssr.tag", tag)),
	)
	defer span.End()

	logger := s.logger.With("tag", tag, "request_id", middleware.GetReqID(ctx))

	// Only registered tags become metric labels.
	metricTag := unknownTag

	fail := func(status int, err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.rendersTotal.WithLabelValues(metricTag, "error").Inc()
		logger.Warn("render failed", "status", status, "error", err)
		writeError(w, status, err)
	}

	entry, err := s.registry.Lookup(tag)
	if err != nil {
		fail(http.StatusNotFound, err)
		return
	}
	metricTag = tag

	bag, err := props.DecodeJSON(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		fail(http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int("ssr.props", len(bag)))

	key, err := cache.Key(tag, bag)
	if err != nil {
		fail(http.StatusBadRequest, errors.New("E043").WithDetail("props cannot be used as a cache key").Wrap(err))
		return
	}

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("cache get failed", "error", err)
	} else if ok {
		span.SetAttributes(attribute.Bool("ssr.cache_hit", true))
		s.metrics.cacheHits.Inc()
		s.metrics.rendersTotal.WithLabelValues(tag, "ok").Inc()
		writeHTML(w, cached, "HIT")
		return
	}
	span.SetAttributes(attribute.Bool("ssr.cache_hit", false))

	start := time.Now()
	html, err := s.renderer.RenderComponent(tag, entry.Ctor, bag...)
	s.metrics.renderDuration.WithLabelValues(tag).Observe(time.Since(start).Seconds())
	if err != nil {
		fail(statusFor(err), err)
		return
	}

	if err := s.cache.Set(ctx, key, []byte(html), s.cacheTTL); err != nil {
		logger.Warn("cache set failed", "error", err)
	}

	s.metrics.rendersTotal.WithLabelValues(tag, "ok").Inc()
	logger.Debug("rendered", "bytes", len(html), "duration", time.Since(start))
	writeHTML(w, []byte(html), "MISS")
}

type componentInfo struct {
	Tag         string `json:"tag"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.Entries()
	out := make([]componentInfo, len(entries))
	for i, e := range entries {
		out[i] = componentInfo{Tag: e.Tag, Description: e.Description}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Error("write components", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// statusFor maps a render error to an HTTP status. Argument and property
// errors are the caller's fault; everything else is a server error.
func statusFor(err error) int {
	if stderrors.Is(err, errors.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	switch errors.CodeOf(err) {
	case "E015", "E043":
		return http.StatusBadRequest
	case "E040":
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeHTML(w http.ResponseWriter, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	e := errors.FromError(err, "")
	if e.Message == "Unknown error" {
		e.Message = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, e.FormatJSON()+"\n")
}
