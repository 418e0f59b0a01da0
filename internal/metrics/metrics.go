package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes fix-run outcomes as Prometheus metrics. It is only
// active in watch mode; one-shot runs report through the CLI summary.
type Collector struct {
	registry *prom.Registry

	runsTotal      prom.Counter
	docsFoundTotal prom.Counter
	docsFixedTotal prom.Counter
	docErrorsTotal prom.Counter
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prom.NewRegistry()

	c := &Collector{
		registry:       registry,
		runsTotal:      prom.NewCounter(prom.CounterOpts{Namespace: "mdlinkfix", Name: "runs_total", Help: "Fix passes executed"}),
		docsFoundTotal: prom.NewCounter(prom.CounterOpts{Namespace: "mdlinkfix", Name: "documents_total", Help: "Documents discovered across fix passes"}),
		docsFixedTotal: prom.NewCounter(prom.CounterOpts{Namespace: "mdlinkfix", Name: "documents_fixed_total", Help: "Documents rewritten across fix passes"}),
		docErrorsTotal: prom.NewCounter(prom.CounterOpts{Namespace: "mdlinkfix", Name: "document_errors_total", Help: "Documents skipped due to per-document errors"}),
	}

	registry.MustRegister(c.runsTotal, c.docsFoundTotal, c.docsFixedTotal, c.docErrorsTotal)
	registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return c
}

// RecordRun records the outcome of one fix pass.
func (c *Collector) RecordRun(found, fixed, failed int) {
	c.runsTotal.Inc()
	c.docsFoundTotal.Add(float64(found))
	c.docsFixedTotal.Add(float64(fixed))
	c.docErrorsTotal.Add(float64(failed))
}

// Handler returns the scrape handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

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

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
