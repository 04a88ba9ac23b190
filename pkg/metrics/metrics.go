// Package metrics provides Prometheus instrumentation for runstats components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for runstats components.
type Registry struct {
	// Accumulator Metrics
	AccumulateBatches      *prometheus.CounterVec
	AccumulateObservations *prometheus.CounterVec
	AccumulateErrors       *prometheus.CounterVec
	AccumulatorResets      *prometheus.CounterVec
	AccumulatorMerges      *prometheus.CounterVec
	ObservationCount       *prometheus.GaugeVec
	ChannelValue           *prometheus.GaugeVec
	BatchSize              *prometheus.HistogramVec

	// Feeder Metrics
	FeederBatches *prometheus.CounterVec
	FeederErrors  *prometheus.CounterVec
	FeederRunning *prometheus.GaugeVec

	// Distributed Metrics
	SnapshotPublishes *prometheus.CounterVec
	SnapshotFetches   *prometheus.CounterVec
	RedisErrors       *prometheus.CounterVec
	PublishDuration   *prometheus.HistogramVec

	// Reporting Metrics
	ReportsEmitted *prometheus.CounterVec
	WindowResets   *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by runstats components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Accumulator Metrics
		AccumulateBatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "batches_total",
				Help:      "Total number of batches folded into accumulators",
			},
			[]string{"reduction", "accumulator_name"},
		),

		AccumulateObservations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "observations_total",
				Help:      "Total number of scalar observations folded into accumulators",
			},
			[]string{"reduction", "accumulator_name"},
		),

		AccumulateErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "errors_total",
				Help:      "Total number of rejected accumulate calls",
			},
			[]string{"reduction", "accumulator_name"},
		),

		AccumulatorResets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "resets_total",
				Help:      "Total number of accumulator resets",
			},
			[]string{"reduction", "accumulator_name"},
		),

		AccumulatorMerges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "merges_total",
				Help:      "Total number of snapshot merges",
			},
			[]string{"reduction", "accumulator_name"},
		),

		ObservationCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "observation_count",
				Help:      "Number of observations currently folded into the accumulator",
			},
			[]string{"reduction", "accumulator_name"},
		),

		ChannelValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "channel_value",
				Help:      "Current per-channel statistic value",
			},
			[]string{"reduction", "accumulator_name", "channel"},
		),

		BatchSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "runstats",
				Subsystem: "accumulator",
				Name:      "batch_size",
				Help:      "Distribution of batch sizes (rows per Accumulate call)",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"reduction", "accumulator_name"},
		),

		// Feeder Metrics
		FeederBatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "feeder",
				Name:      "batches_total",
				Help:      "Total number of batches drained by feeders",
			},
			[]string{"feeder_name"},
		),

		FeederErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "feeder",
				Name:      "errors_total",
				Help:      "Total number of feeder accumulation errors",
			},
			[]string{"feeder_name"},
		),

		FeederRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "runstats",
				Subsystem: "feeder",
				Name:      "running",
				Help:      "Whether the feeder is currently draining (1) or stopped (0)",
			},
			[]string{"feeder_name"},
		),

		// Distributed Metrics
		SnapshotPublishes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "distributed",
				Name:      "publishes_total",
				Help:      "Total number of snapshot publishes to Redis",
			},
			[]string{"key", "instance_id"},
		),

		SnapshotFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "distributed",
				Name:      "fetches_total",
				Help:      "Total number of snapshot fetches from Redis",
			},
			[]string{"key", "instance_id"},
		),

		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "distributed",
				Name:      "redis_errors_total",
				Help:      "Total number of failed Redis operations",
			},
			[]string{"key", "operation"},
		),

		PublishDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "runstats",
				Subsystem: "distributed",
				Name:      "publish_duration_seconds",
				Help:      "Time spent publishing snapshots to Redis",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"key"},
		),

		// Reporting Metrics
		ReportsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "reporting",
				Name:      "reports_total",
				Help:      "Total number of reports emitted",
			},
			[]string{"reporter_name"},
		),

		WindowResets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runstats",
				Subsystem: "reporting",
				Name:      "window_resets_total",
				Help:      "Total number of post-report accumulator resets",
			},
			[]string{"reporter_name"},
		),
	}
}
