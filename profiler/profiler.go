// Package profiler - Rolling timing and gauge statistics for the detection and render
// paths, reported periodically through zap.
package profiler

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MetricsCollector is polled on every report for gauge values.
type MetricsCollector interface {
	CollectMetrics() map[string]float64
}

// Options configures a Profiler.
type Options struct {
	// ReportInterval is how often a report is logged (default: 5s).
	ReportInterval time.Duration
	// MaxSamples bounds the rolling window kept per operation or metric (default: 300).
	MaxSamples int
}

// OperationStats summarises the retained samples of one timed operation.
type OperationStats struct {
	Count int64         `json:"count"`
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
}

// MetricStats summarises the retained samples of one metric.
type MetricStats struct {
	Samples int     `json:"samples"`
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Last    float64 `json:"last"`
}

type window[T int64 | float64] struct {
	values []T
	count  int64
}

func (w *window[T]) add(v T, limit int) {
	w.values = append(w.values, v)
	if len(w.values) > limit {
		w.values = w.values[1:]
	}
	w.count++
}

func (w *window[T]) summary() (sum, lo, hi T) {
	for i, v := range w.values {
		sum += v
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return sum, lo, hi
}

// Profiler collects operation timings and metric values.
//
// @example
// p := profiler.New(profiler.Options{}, logger)
// done := p.StartOperation("detect")
// ...
// done()
type Profiler struct {
	opts   Options
	logger *zap.Logger

	mu         sync.Mutex
	operations map[string]*window[int64]
	metrics    map[string]*window[float64]
	collectors []MetricsCollector
}

// New creates a profiler. A nil logger disables reporting output.
func New(opts Options, logger *zap.Logger) *Profiler {
	if opts.ReportInterval <= 0 {
		opts.ReportInterval = 5 * time.Second
	}
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = 300
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		opts:       opts,
		logger:     logger,
		operations: make(map[string]*window[int64]),
		metrics:    make(map[string]*window[float64]),
	}
}

// AddMetricsCollector registers a collector polled before every report.
func (p *Profiler) AddMetricsCollector(c MetricsCollector) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collectors = append(p.collectors, c)
}

// StartOperation begins timing an operation and returns the function that ends it.
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.RecordOperation(name, time.Since(start))
	}
}

// RecordOperation records one completed operation.
func (p *Profiler) RecordOperation(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.operations[name]
	if !ok {
		w = &window[int64]{}
		p.operations[name] = w
	}
	w.add(int64(d), p.opts.MaxSamples)
}

// RecordMetric records one metric value.
func (p *Profiler) RecordMetric(name string, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recordMetricLocked(name, value)
}

func (p *Profiler) recordMetricLocked(name string, value float64) {
	w, ok := p.metrics[name]
	if !ok {
		w = &window[float64]{}
		p.metrics[name] = w
	}
	w.add(value, p.opts.MaxSamples)
}

// Operations returns a snapshot of every timed operation.
func (p *Profiler) Operations() map[string]OperationStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]OperationStats, len(p.operations))
	for name, w := range p.operations {
		if len(w.values) == 0 {
			continue
		}
		sum, lo, hi := w.summary()
		out[name] = OperationStats{
			Count: w.count,
			Avg:   time.Duration(sum / int64(len(w.values))),
			Min:   time.Duration(lo),
			Max:   time.Duration(hi),
		}
	}
	return out
}

// Metrics returns a snapshot of every metric.
func (p *Profiler) Metrics() map[string]MetricStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]MetricStats, len(p.metrics))
	for name, w := range p.metrics {
		if len(w.values) == 0 {
			continue
		}
		sum, lo, hi := w.summary()
		out[name] = MetricStats{
			Samples: len(w.values),
			Avg:     sum / float64(len(w.values)),
			Min:     lo,
			Max:     hi,
			Last:    w.values[len(w.values)-1],
		}
	}
	return out
}

// Collect polls every registered collector once.
func (p *Profiler) Collect() {
	p.mu.Lock()
	collectors := append([]MetricsCollector(nil), p.collectors...)
	p.mu.Unlock()

	for _, c := range collectors {
		values := c.CollectMetrics()
		p.mu.Lock()
		for name, v := range values {
			p.recordMetricLocked(name, v)
		}
		p.mu.Unlock()
	}
}

// Report collects gauges and logs one line per operation and metric.
func (p *Profiler) Report() {
	p.Collect()

	ops := p.Operations()
	for _, name := range sortedKeys(ops) {
		s := ops[name]
		p.logger.Info("operation timing",
			zap.String("operation", name),
			zap.Int64("count", s.Count),
			zap.Duration("avg", s.Avg),
			zap.Duration("min", s.Min),
			zap.Duration("max", s.Max))
	}

	metrics := p.Metrics()
	for _, name := range sortedKeys(metrics) {
		s := metrics[name]
		p.logger.Info("metric",
			zap.String("metric", name),
			zap.Float64("last", s.Last),
			zap.Float64("avg", s.Avg),
			zap.Float64("min", s.Min),
			zap.Float64("max", s.Max))
	}
}

// Run reports every ReportInterval until ctx is cancelled, then reports once more.
func (p *Profiler) Run(ctx context.Context) {
	ticker := time.NewTicker(p.opts.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Report()
			return
		case <-ticker.C:
			p.Report()
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
