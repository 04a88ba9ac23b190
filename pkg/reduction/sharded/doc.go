/*
Package sharded provides per-worker accumulators that merge into a single
statistic after feeding completes.

Accumulators are not safe for concurrent use, so concurrent producers either
serialize through one feeder or take a shard each. Sharding avoids all
contention on the hot path: each goroutine mutates only its own accumulator,
and the count-weighted merge at the end is exact, not an approximation.

	s := sharded.New(sharded.Config{
		Accumulator: runstats.Config{Channels: 4, Reduction: runstats.Mean},
		Shards:      workers,
	})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		shard, _ := s.Shard(i)
		wg.Add(1)
		go func(acc runstats.Accumulator) {
			defer wg.Done()
			for batch := range batches {
				_, _ = acc.Accumulate(batch)
			}
		}(shard)
	}
	wg.Wait()

	result, err := s.Result()

Combine must only be called after all feeding goroutines have stopped.
*/
package sharded
