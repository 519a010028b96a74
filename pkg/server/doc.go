// Package server exposes component rendering over HTTP.
//
// Routes:
//
//	POST /render/{tag}   render a registered component; body is a JSON props object
//	GET  /components     list registered components
//	GET  /healthz        liveness probe
//	GET  /metrics        Prometheus metrics
//
// Renders are cached by tag and props when a cache is configured, traced
// with OpenTelemetry (one span per render) and counted in Prometheus.
//
//	srv := server.New(reg,
//	    server.WithCache(cache.NewMemory(), 5*time.Minute),
//	    server.WithLogger(logger),
//	)
//	err := srv.ListenAndServe(ctx, ":3000")
package server
