/*
Package runstats provides memory-efficient online (single-pass) statistical
reductions over streamed batches of numeric data.

Reductions (pkg/reduction):
  - runstats: running mean and root-mean-square per channel
  - welford: one-pass mean/variance/standard deviation
  - bincount: integer occurrence counting
  - sharded: per-worker accumulators merged after the fact

Streaming (pkg/streaming):
  - feeder: serialized channel-driven accumulation

Coordination and reporting:
  - distributed: cross-instance snapshot aggregation with Redis
  - reporting: cron or interval driven snapshot windows

Example usage:

	import "github.com/vnykmshr/runstats/pkg/reduction/runstats"

	acc, _ := runstats.NewSafe(3, runstats.RMS) // 3 channels, RMS reduction

	_, _ = acc.Accumulate([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})

	fmt.Println(acc.Result())
*/
package runstats
