/*
Package runstats provides online (single-pass) running mean and
root-mean-square accumulation over streamed batches of observations.

An Accumulator tracks a fixed number of channels. Each incoming batch is
folded into the running statistics with an incremental update that never
re-visits previously seen data, so memory use is constant regardless of
stream length.

Basic usage:

	acc, err := runstats.NewSafe(3, runstats.Mean) // 3 channels
	if err != nil {
		log.Fatal(err)
	}

	// Each row is one observation with one value per channel.
	batchResult, err := acc.Accumulate([][]float64{
		{1.0, 10.0, 100.0},
		{2.0, 20.0, 200.0},
	})

	running := acc.Result() // statistic over everything seen so far

Reductions:

	runstats.Mean // running arithmetic mean per channel
	runstats.RMS  // running sqrt(mean(x^2)) per channel

For RMS the accumulator maintains the running mean of squared observations
and applies the square root at read time, so accumulation cost is identical
to Mean.

Numerical Stability:

Each batch updates the running mean with

	mean += (batchSum - mean*batchN) / (count + batchN)

rather than summing raw values forever or re-averaging two already-rounded
means, which bounds per-step error growth over long streams.

Subset Updates:

Channels accumulate independently. A batch may target a single channel:

	err := acc.AccumulateChannel(1, []float64{10.0, 20.0, 30.0})

Per-channel counts diverge in that case; Counts() exposes them.

Merging:

Snapshot and Merge combine accumulators fed disjoint data, weighted by each
side's counts. This is the building block for sharded (pkg/reduction/sharded)
and cross-process (pkg/distributed) aggregation:

	snap := other.Snapshot()
	if err := acc.Merge(snap); err != nil {
		log.Fatal(err)
	}

Empty Reads:

Result returns 0 for channels that have seen no observations. Callers that
need to distinguish "no data" from "statistic is zero" should consult Count
or Counts.

Thread Safety:

An Accumulator is not safe for concurrent use. Feed it from one goroutine
(pkg/streaming/feeder serializes a channel of batches for you) or give each
worker its own accumulator and merge afterwards.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics wrap the accumulator with
Prometheus instrumentation; see pkg/metrics for the exposed series.
*/
package runstats
