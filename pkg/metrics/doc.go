// Package metrics provides Prometheus instrumentation for runstats components.
//
// This package enables monitoring and observability for accumulators,
// feeders, distributed snapshot stores, and reporters through Prometheus
// metrics.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	acc, _ := runstats.NewWithMetrics(runstats.Config{Channels: 4, Reduction: runstats.Mean}, "activations")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	acc, _ := runstats.NewWithConfigAndMetrics(
//		runstats.Config{Channels: 4, Reduction: runstats.RMS},
//		"activations",
//		config,
//	)
//
// # Available Metrics
//
// ## Accumulator Metrics
//
//   - runstats_accumulator_batches_total: Batches folded into accumulators
//   - runstats_accumulator_observations_total: Scalar observations folded in
//   - runstats_accumulator_errors_total: Rejected accumulate calls
//   - runstats_accumulator_resets_total: Accumulator resets
//   - runstats_accumulator_merges_total: Snapshot merges
//   - runstats_accumulator_observation_count: Current observation count
//   - runstats_accumulator_channel_value: Current per-channel statistic
//   - runstats_accumulator_batch_size: Distribution of batch sizes
//
// ## Feeder Metrics
//
//   - runstats_feeder_batches_total: Batches drained by feeders
//   - runstats_feeder_errors_total: Feeder accumulation errors
//   - runstats_feeder_running: Whether the feeder is draining
//
// ## Distributed Metrics
//
//   - runstats_distributed_publishes_total: Snapshot publishes to Redis
//   - runstats_distributed_fetches_total: Snapshot fetches from Redis
//   - runstats_distributed_redis_errors_total: Failed Redis operations
//   - runstats_distributed_publish_duration_seconds: Publish latency
//
// ## Reporting Metrics
//
//   - runstats_reporting_reports_total: Reports emitted
//   - runstats_reporting_window_resets_total: Post-report resets
//
// # Labels
//
//   - reduction: "mean" or "rms"
//   - accumulator_name, feeder_name, reporter_name: user-provided instance names
//   - key, instance_id: distributed store coordinates
//   - channel: zero-based channel index as a string
package metrics
