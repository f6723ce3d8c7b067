package profiler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticCollector map[string]float64

func (c staticCollector) CollectMetrics() map[string]float64 { return c }

func TestRecordOperation(t *testing.T) {
	p := New(Options{MaxSamples: 3}, nil)
	for _, ms := range []int{10, 20, 30, 40} {
		p.RecordOperation("render", time.Duration(ms)*time.Millisecond)
	}

	stats := p.Operations()["render"]
	assert.Equal(t, int64(4), stats.Count)
	assert.Equal(t, 30*time.Millisecond, stats.Avg, "only the last three samples are kept")
	assert.Equal(t, 20*time.Millisecond, stats.Min)
	assert.Equal(t, 40*time.Millisecond, stats.Max)
}

func TestStartOperation(t *testing.T) {
	p := New(Options{}, nil)
	done := p.StartOperation("detect")
	time.Sleep(time.Millisecond)
	done()

	stats, ok := p.Operations()["detect"]
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Count)
	assert.GreaterOrEqual(t, stats.Min, time.Millisecond)
}

func TestMetricsAndCollectors(t *testing.T) {
	p := New(Options{}, nil)
	p.RecordMetric("tracked", 2)
	p.RecordMetric("tracked", 4)
	p.AddMetricsCollector(staticCollector{"passes": 7})
	p.Collect()

	m := p.Metrics()
	assert.Equal(t, MetricStats{Samples: 2, Avg: 3, Min: 2, Max: 4, Last: 4}, m["tracked"])
	assert.Equal(t, float64(7), m["passes"].Last)
}

func TestReportLogsSorted(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := New(Options{}, zap.New(core))
	p.RecordOperation("render", time.Millisecond)
	p.RecordOperation("detect", time.Millisecond)
	p.AddMetricsCollector(staticCollector{"tracked": 1})

	p.Report()

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "detect", entries[0].ContextMap()["operation"])
	assert.Equal(t, "render", entries[1].ContextMap()["operation"])
	assert.Equal(t, "tracked", entries[2].ContextMap()["metric"])
}

func TestRunReportsOnCancel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := New(Options{ReportInterval: time.Hour}, zap.New(core))
	p.RecordMetric("tracked", 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, logs.FilterMessage("metric").Len())
}
