package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SchedulerMetrics holds the instruments for the admission layer.
type SchedulerMetrics struct {
	jobsTotal    metric.Int64Counter
	jobDuration  metric.Float64Histogram
	jobsRejected metric.Int64Counter
}

// NewSchedulerMetrics creates the scheduler instruments on the given meter.
// coldInUse is sampled on every export as an observable gauge.
func NewSchedulerMetrics(meter metric.Meter, coldInUse func() int) (*SchedulerMetrics, error) {
	jobsTotal, err := meter.Int64Counter("whisperd.jobs.total",
		metric.WithDescription("Terminal job results by path and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating jobs.total counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram("whisperd.job.duration",
		metric.WithDescription("Job duration from admission to terminal result"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating job.duration histogram: %w", err)
	}

	jobsRejected, err := meter.Int64Counter("whisperd.jobs.rejected",
		metric.WithDescription("Jobs turned away before either path ran, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating jobs.rejected counter: %w", err)
	}

	if coldInUse != nil {
		_, err = meter.Int64ObservableGauge("whisperd.cold.in_use",
			metric.WithDescription("Cold worker slots currently held"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(int64(coldInUse()))
				return nil
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("creating cold.in_use gauge: %w", err)
		}
	}

	return &SchedulerMetrics{
		jobsTotal:    jobsTotal,
		jobDuration:  jobDuration,
		jobsRejected: jobsRejected,
	}, nil
}

// RecordResult records one terminal job result.
func (m *SchedulerMetrics) RecordResult(path string, code string, elapsed time.Duration) {
	status := "ok"
	if code != "" {
		status = code
	}
	attrs := metric.WithAttributes(
		attribute.String("path", path),
		attribute.String("status", status),
	)
	ctx := context.Background()
	m.jobsTotal.Add(ctx, 1, attrs)
	m.jobDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordRejection records a job rejected before execution.
func (m *SchedulerMetrics) RecordRejection(code string) {
	m.jobsRejected.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("code", code)))
}
