package runstats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/runstats/internal/testutil"
	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/metrics"
)

func newMetricsAccumulator(t *testing.T, cfg Config) Accumulator {
	t.Helper()
	acc, err := NewWithConfigAndMetrics(cfg, "test", metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
	testutil.AssertNoError(t, err)
	return acc
}

func TestMetricsAccumulator_DelegatesAccumulation(t *testing.T) {
	acc := newMetricsAccumulator(t, Config{Channels: 2, Reduction: Mean})

	result, err := acc.Accumulate([][]float64{{1, 10}, {3, 30}})
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsInDelta(t, result, []float64{2, 20}, testutil.FloatTolerance)

	testutil.AssertNoError(t, acc.AccumulateChannel(0, []float64{5}))
	testutil.AssertEqual(t, acc.Count(), int64(5))
	testutil.AssertEqual(t, acc.Channels(), 2)
	testutil.AssertEqual(t, acc.Reduction(), Mean)

	acc.Reset()
	testutil.AssertEqual(t, acc.Count(), int64(0))
}

func TestMetricsAccumulator_PropagatesErrors(t *testing.T) {
	acc := newMetricsAccumulator(t, Config{Channels: 2, Reduction: Mean})

	_, err := acc.Accumulate([][]float64{{1}})
	testutil.AssertError(t, err)
	if !errors.IsShapeError(err) {
		t.Errorf("expected shape error, got %v", err)
	}
}

func TestMetricsAccumulator_MergeAndSnapshot(t *testing.T) {
	acc := newMetricsAccumulator(t, Config{Channels: 1, Reduction: Mean})
	other := New(1, Mean)
	_, err := other.Accumulate([][]float64{{4}, {6}})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, acc.Merge(other.Snapshot()))
	testutil.AssertInDelta(t, acc.Result()[0], 5, testutil.FloatTolerance)
	testutil.AssertEqual(t, acc.Snapshot().Count(), int64(2))
}

func TestMetricsAccumulator_Lifecycle(t *testing.T) {
	acc := newMetricsAccumulator(t, Config{Channels: 1, Reduction: Mean})

	ma, ok := acc.(*MetricsAccumulator)
	if !ok {
		t.Fatalf("expected *MetricsAccumulator, got %T", acc)
	}

	testutil.AssertEqual(t, ma.MetricsEnabled(), true)
	ma.DisableMetrics()
	testutil.AssertEqual(t, ma.MetricsEnabled(), false)

	testutil.AssertNoError(t, ma.EnableMetrics(metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	}))
	testutil.AssertEqual(t, ma.MetricsEnabled(), true)
}

func TestNewWithConfigAndMetrics_Disabled(t *testing.T) {
	acc, err := NewWithConfigAndMetrics(Config{Channels: 1, Reduction: Mean}, "plain", metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)

	if _, ok := acc.(*MetricsAccumulator); ok {
		t.Error("disabled metrics config should return the bare accumulator")
	}
}

func TestNewWithMetrics_InvalidConfig(t *testing.T) {
	_, err := NewWithMetrics(Config{Channels: 0, Reduction: Mean}, "bad")
	testutil.AssertError(t, err)
	if !errors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
