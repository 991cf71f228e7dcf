// Package datadog implements a Datadog backend for the internal/metrics package.
//
// Scans are usually short-lived commands, so the backend buffers points
// in-memory and submits them on Flush(): periodically from a ticker loop for
// long scans, and once more on Close() so a quick run still reports.
//
// Concurrency model:
//   - callers may IncCounter/SetGauge at any time
//   - Flush snapshots+resets buffers under a mutex, then submits out-of-lock
//   - the flush loop calls Flush() periodically; Close() stops the loop
package datadog

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"tablescan/internal/metrics"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// Options controls Datadog backend configuration.
type Options struct {
	// JobName becomes tag "job:<name>" on every metric.
	// If empty, defaults to "tablescan".
	JobName string

	// Tags are extra Datadog tags (e.g. []string{"env:prod", "service:tablescan"}).
	Tags []string

	// FlushEvery controls how often buffered metrics are submitted.
	// If <= 0, defaults to 60 seconds.
	FlushEvery time.Duration

	// Unexported test seams. Production code never sets these; unit tests use
	// them to avoid real network submission and nondeterministic clocks.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker
	submitter metricsSubmitter
}

// metricsSubmitter is the minimal interface needed to submit metrics. The SDK
// exposes a concrete *datadogV2.MetricsApi, which cannot be stubbed without
// real HTTP; depending on this interface keeps tests deterministic.
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

// Backend implements metrics.Backend for Datadog.
type Backend struct {
	api metricsSubmitter
	ctx context.Context

	flushEvery time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	baseTags []string

	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker

	mu sync.Mutex

	runCounts map[string]float64 // status -> count
	rowCounts map[string]float64 // format -> count
	gauges    map[string]float64 // metric name -> last value
}

func resolveEnvTag() string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return "env:" + v
	}
	if v := strings.TrimSpace(os.Getenv("DD_ENV")); v != "" {
		return "env:" + v
	}
	return "env:unknown"
}

// NewBackend constructs a Datadog backend using the official client.
//
// Edge cases:
//   - If opts.FlushEvery <= 0, defaults to 60s.
//   - If opts.JobName is empty, defaults to "tablescan".
//   - Environment tag selection uses ENV then DD_ENV, otherwise env:unknown.
func NewBackend(parent context.Context, opts Options) (*Backend, error) {
	job := opts.JobName
	if job == "" {
		job = "tablescan"
	}

	flushEvery := opts.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 60 * time.Second
	}

	baseTags := make([]string, 0, 2+len(opts.Tags))
	baseTags = append(baseTags, resolveEnvTag(), "job:"+job)
	baseTags = append(baseTags, opts.Tags...)

	nowFn := opts.now
	if nowFn == nil {
		nowFn = time.Now
	}
	newTicker := opts.newTicker
	if newTicker == nil {
		newTicker = time.NewTicker
	}

	submitter := opts.submitter
	if submitter == nil {
		cfg := dd.NewConfiguration()
		client := dd.NewAPIClient(cfg)
		submitter = datadogV2.NewMetricsApi(client)
	}

	b := &Backend{
		api:        submitter,
		ctx:        dd.NewDefaultContext(parent),
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),

		baseTags: baseTags,

		now:       nowFn,
		newTicker: newTicker,

		runCounts: make(map[string]float64),
		rowCounts: make(map[string]float64),
		gauges:    make(map[string]float64),
	}

	go b.loop()
	return b, nil
}

func (b *Backend) loop() {
	defer close(b.doneCh)

	t := b.newTicker(b.flushEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			_ = b.Flush()
		case <-b.stopCh:
			return
		}
	}
}

// Close stops the background flush loop and performs one final Flush().
// Close must be called at most once; a second call panics on the closed
// stop channel, the usual Go close-once contract.
func (b *Backend) Close() error {
	close(b.stopCh)
	<-b.doneCh
	return b.Flush()
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if delta <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch name {
	case metrics.RunsTotal:
		status := labels["status"]
		if status == "" {
			status = "unknown"
		}
		b.runCounts[status] += delta

	case metrics.RowsTotal:
		format := labels["format"]
		if format == "" {
			format = "unknown"
		}
		b.rowCounts[format] += delta

	default:
		// Ignore unknown metrics.
	}
}

// SetGauge implements metrics.Backend. Only the last value per gauge in a
// flush window is submitted.
func (b *Backend) SetGauge(name string, value float64, labels metrics.Labels) {
	switch name {
	case metrics.DurationGauge, metrics.NumericColumns:
	default:
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.gauges[name] = value
}

// snapshot is the detached buffered state used to build a flush payload, so
// that submission happens out-of-lock.
type snapshot struct {
	runCounts map[string]float64
	rowCounts map[string]float64
	gauges    map[string]float64
}

func (b *Backend) snapshotAndReset() snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := snapshot{
		runCounts: b.runCounts,
		rowCounts: b.rowCounts,
		gauges:    b.gauges,
	}

	b.runCounts = make(map[string]float64)
	b.rowCounts = make(map[string]float64)
	b.gauges = make(map[string]float64)

	return s
}

func (s snapshot) isEmpty() bool {
	return len(s.runCounts) == 0 && len(s.rowCounts) == 0 && len(s.gauges) == 0
}

// Flush submits buffered metrics to Datadog and resets local buffers.
//
// Buffers are reset even if submission fails, so a flaky intake endpoint
// never blocks the scan.
func (b *Backend) Flush() error {
	snap := b.snapshotAndReset()
	if snap.isEmpty() {
		return nil
	}

	payload := datadogV2.MetricPayload{Series: b.buildSeries(snap, b.now().Unix())}

	_, _, err := b.api.SubmitMetrics(b.ctx, payload, *datadogV2.NewSubmitMetricsOptionalParameters())
	return err
}

// buildSeries constructs Datadog series for a snapshot at a fixed timestamp.
// It is pure (no locks, no network, no clocks) and centralizes the wire
// naming contract.
func (b *Backend) buildSeries(s snapshot, nowUnix int64) []datadogV2.MetricSeries {
	series := make([]datadogV2.MetricSeries, 0, len(s.runCounts)+len(s.rowCounts)+len(s.gauges))

	for status, v := range s.runCounts {
		if v == 0 {
			continue
		}
		tags := withTags(b.baseTags, "status:"+status)
		series = append(series, countSeries("tablescan.runs.total", v, tags, nowUnix))
	}

	for format, v := range s.rowCounts {
		if v == 0 {
			continue
		}
		tags := withTags(b.baseTags, "format:"+format)
		series = append(series, countSeries("tablescan.rows.total", v, tags, nowUnix))
	}

	gaugeNames := map[string]string{
		metrics.DurationGauge:  "tablescan.scan.duration_seconds",
		metrics.NumericColumns: "tablescan.scan.numeric_columns",
	}
	for name, v := range s.gauges {
		wire, ok := gaugeNames[name]
		if !ok {
			continue
		}
		series = append(series, gaugeSeries(wire, v, b.baseTags, nowUnix))
	}

	return series
}

func countSeries(metric string, value float64, tags []string, nowUnix int64) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: metric,
		Type:   datadogV2.METRICINTAKETYPE_COUNT.Ptr(),
		Points: []datadogV2.MetricPoint{
			{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(value)},
		},
		Tags: tags,
	}
}

func gaugeSeries(metric string, value float64, tags []string, nowUnix int64) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: metric,
		Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
		Points: []datadogV2.MetricPoint{
			{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(value)},
		},
		Tags: tags,
	}
}

func withTags(base []string, extras ...string) []string {
	out := make([]string, 0, len(base)+len(extras))
	out = append(out, base...)
	out = append(out, extras...)
	return out
}

var _ metrics.Backend = (*Backend)(nil)

// ParseTagsCSV parses comma-separated tags like "env:prod,service:tablescan".
func ParseTagsCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
