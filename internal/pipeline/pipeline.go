package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/observability"
)

// RecordSource streams raw storm records from the dataset. Next returns
// io.EOF when the stream is exhausted. Anomalies reports data-quality
// problems the source skipped over (e.g. short rows) and is meaningful
// once Next has returned io.EOF. The caller that opened the source owns
// closing it.
type RecordSource interface {
	Next(ctx context.Context) (domain.RawStormRecord, error)
	Anomalies() domain.AnomalyCounts
}

// ReportSink consumes the finalized report. Sinks are independent; one
// failing does not stop the others.
type ReportSink interface {
	Name() string
	Publish(ctx context.Context, report domain.Report) error
}

// Pipeline runs the parse-aggregate-rank pass over a record source and
// fans the finished report out to the configured sinks.
type Pipeline struct {
	sinks   []ReportSink
	logger  *slog.Logger
	metrics *observability.Metrics
	dataset string
	topK    int

	ready  atomic.Bool
	report atomic.Pointer[domain.Report]
}

// New creates a Pipeline. dataset names the input in the report; topK is
// the length of each ranked sequence.
func New(sinks []ReportSink, logger *slog.Logger, metrics *observability.Metrics, dataset string, topK int) *Pipeline {
	return &Pipeline{
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
		dataset: dataset,
		topK:    topK,
	}
}

// CheckReadiness returns nil once a finalized report is available, or an
// error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("report has not been computed yet")
	}
	return nil
}

// Report returns the finalized report, and false while the batch is still
// running.
func (p *Pipeline) Report() (domain.Report, bool) {
	r := p.report.Load()
	if r == nil {
		return domain.Report{}, false
	}
	return *r, true
}

// Run consumes the source to exhaustion, builds the report, and publishes
// it. The report is stored and readiness is marked even when a sink fails;
// sink failures are joined into the returned error.
func (p *Pipeline) Run(ctx context.Context, src RecordSource) (domain.Report, error) {
	p.logger.Info("batch started", "dataset", p.dataset, "top_k", p.topK)
	start := time.Now()

	agg := domain.NewAggregator()
	var records int64
	for {
		raw, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Report{}, fmt.Errorf("read record: %w", err)
		}

		rec, malformed := domain.ParseRecord(raw)
		agg.CountAnomaly(domain.AnomalyMalformedNumeric, int64(malformed))
		agg.Add(rec)
		records++
	}
	for kind, n := range src.Anomalies() {
		agg.CountAnomaly(kind, n)
	}

	summary := agg.Finalize()
	report := domain.BuildReport(p.dataset, summary, p.topK)

	p.metrics.RecordsProcessed.Add(float64(records))
	for kind, n := range report.Anomalies {
		p.metrics.Anomalies.WithLabelValues(string(kind)).Add(float64(n))
	}
	p.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	p.metrics.ReportReady.Set(1)

	p.report.Store(&report)
	p.ready.Store(true)

	p.logger.Info("batch complete",
		"records", records,
		"labels", len(summary.Totals),
		"anomalies", report.Anomalies.Total(),
		"duration", time.Since(start),
	)

	return report, p.publish(ctx, report)
}

// publish fans the report out to every sink, continuing past failures.
func (p *Pipeline) publish(ctx context.Context, report domain.Report) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, report); err != nil {
			p.logger.Error("report sink failed", "sink", sink.Name(), "error", err)
			p.metrics.SinkErrors.WithLabelValues(sink.Name()).Inc()
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
			continue
		}
		p.logger.Info("report published", "sink", sink.Name())
	}
	return errors.Join(errs...)
}
