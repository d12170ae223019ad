// Package metrics exposes Prometheus instrumentation for the watcher. The
// /metrics endpoint is optional and off unless a listen address is configured.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketbot_checks_total",
		Help: "Scrape cycles attempted inside operating hours.",
	})
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketbot_fetch_errors_total",
		Help: "Scrape cycles that failed on fetch or parse.",
	})
	AlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketbot_alerts_total",
		Help: "Availability alerts delivered to the channel.",
	})
	DigestUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketbot_digest_updates_total",
		Help: "Digest messages delivered after a change was detected.",
	})

	announced = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ticketbot_target_announced",
		Help: "1 while the target date alert has been sent and not reset.",
	})
)

// SetAnnounced mirrors the announced flag into the gauge.
func SetAnnounced(v bool) {
	if v {
		announced.Set(1)
	} else {
		announced.Set(0)
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
