// Package metrics exposes Prometheus instrumentation for gamedeck.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup results
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultShared = "shared"
)

var (
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamedeck_cache_requests_total",
		Help: "Cache lookups by cache name and result.",
	}, []string{"cache", "result"}) // result: hit, miss, shared

	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamedeck_cache_evictions_total",
		Help: "Entries evicted because the cache reached capacity.",
	}, []string{"cache"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamedeck_catalog_request_duration_seconds",
		Help:    "Duration of catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
)

// RecordCacheResult counts one cache lookup.
func RecordCacheResult(cache, result string) {
	CacheRequests.WithLabelValues(cache, result).Inc()
}

// RecordEviction counts one capacity eviction.
func RecordEviction(cache string) {
	CacheEvictions.WithLabelValues(cache).Inc()
}

// RecordCatalogRequest observes a catalog request. status is the HTTP status
// code, or 0 when the request never got a response.
func RecordCatalogRequest(endpoint string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	CatalogRequestDuration.WithLabelValues(endpoint, label).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr until ctx is canceled.
// An empty addr disables the endpoint.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if addr == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
