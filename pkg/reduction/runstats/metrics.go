package runstats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/runstats/pkg/metrics"
)

// MetricsAccumulator wraps an Accumulator with Prometheus metrics collection.
type MetricsAccumulator struct {
	acc      Accumulator
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates an accumulator with metrics enabled.
func NewWithMetrics(config Config, name string) (Accumulator, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(config, name, metricsConfig)
}

// NewWithConfigAndMetrics creates an accumulator with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Accumulator, error) {
	base, err := NewWithConfigSafe(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return base, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsAccumulator{
		acc:      base,
		name:     name,
		registry: registry,
		enabled:  true,
	}, nil
}

// Accumulate folds a batch into the running statistics.
func (ma *MetricsAccumulator) Accumulate(batch [][]float64) ([]float64, error) {
	result, err := ma.acc.Accumulate(batch)

	if ma.enabled {
		reduction := ma.acc.Reduction().String()
		if err != nil {
			ma.registry.AccumulateErrors.WithLabelValues(reduction, ma.name).Inc()
		} else if len(batch) > 0 {
			ma.registry.AccumulateBatches.WithLabelValues(reduction, ma.name).Inc()
			ma.registry.AccumulateObservations.WithLabelValues(reduction, ma.name).
				Add(float64(len(batch) * ma.acc.Channels()))
			ma.registry.BatchSize.WithLabelValues(reduction, ma.name).Observe(float64(len(batch)))
			ma.publishState()
		}
	}

	return result, err
}

// AccumulateChannel folds scalar observations into a single channel.
func (ma *MetricsAccumulator) AccumulateChannel(ch int, values []float64) error {
	err := ma.acc.AccumulateChannel(ch, values)

	if ma.enabled {
		reduction := ma.acc.Reduction().String()
		if err != nil {
			ma.registry.AccumulateErrors.WithLabelValues(reduction, ma.name).Inc()
		} else if len(values) > 0 {
			ma.registry.AccumulateObservations.WithLabelValues(reduction, ma.name).
				Add(float64(len(values)))
			ma.publishState()
		}
	}

	return err
}

// Result returns the per-channel statistic.
func (ma *MetricsAccumulator) Result() []float64 {
	return ma.acc.Result()
}

// ResultChannel returns the statistic for a single channel.
func (ma *MetricsAccumulator) ResultChannel(ch int) (float64, error) {
	return ma.acc.ResultChannel(ch)
}

// Merge folds another accumulator's snapshot into this one.
func (ma *MetricsAccumulator) Merge(snap Snapshot) error {
	err := ma.acc.Merge(snap)

	if ma.enabled {
		reduction := ma.acc.Reduction().String()
		if err != nil {
			ma.registry.AccumulateErrors.WithLabelValues(reduction, ma.name).Inc()
		} else {
			ma.registry.AccumulatorMerges.WithLabelValues(reduction, ma.name).Inc()
			ma.publishState()
		}
	}

	return err
}

// Snapshot returns a copy of the accumulator's state.
func (ma *MetricsAccumulator) Snapshot() Snapshot {
	return ma.acc.Snapshot()
}

// Reset returns the accumulator to its initial empty state.
func (ma *MetricsAccumulator) Reset() {
	ma.acc.Reset()

	if ma.enabled {
		reduction := ma.acc.Reduction().String()
		ma.registry.AccumulatorResets.WithLabelValues(reduction, ma.name).Inc()
		ma.publishState()
	}
}

// Count returns the total number of scalar observations folded in.
func (ma *MetricsAccumulator) Count() int64 {
	return ma.acc.Count()
}

// Counts returns a copy of the per-channel observation counts.
func (ma *MetricsAccumulator) Counts() []int64 {
	return ma.acc.Counts()
}

// Channels returns the configured channel count.
func (ma *MetricsAccumulator) Channels() int {
	return ma.acc.Channels()
}

// Reduction returns the statistic this accumulator maintains.
func (ma *MetricsAccumulator) Reduction() Reduction {
	return ma.acc.Reduction()
}

// EnableMetrics enables metrics collection.
func (ma *MetricsAccumulator) EnableMetrics(config metrics.Config) error {
	ma.enabled = config.Enabled

	if config.Registry != nil {
		ma.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (ma *MetricsAccumulator) DisableMetrics() {
	ma.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ma *MetricsAccumulator) MetricsEnabled() bool {
	return ma.enabled
}

// publishState mirrors the current count and per-channel statistic into gauges.
func (ma *MetricsAccumulator) publishState() {
	reduction := ma.acc.Reduction().String()
	ma.registry.ObservationCount.WithLabelValues(reduction, ma.name).Set(float64(ma.acc.Count()))

	for ch, v := range ma.acc.Result() {
		ma.registry.ChannelValue.WithLabelValues(reduction, ma.name, strconv.Itoa(ch)).Set(v)
	}
}
