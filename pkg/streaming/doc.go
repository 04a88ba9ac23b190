/*
Package streaming offers channel-driven accumulation on top of the
reduction packages.

This package currently provides one component:

  - feeder: drains a channel of observation batches into an accumulator,
    serializing concurrent producers onto the single goroutine the
    accumulators require

Basic usage:

	batches := make(chan [][]float64, 16)

	f, _ := feeder.New(feeder.Config{
		Accumulator: acc,
		Source:      batches,
	})
	_ = f.Start(ctx)

	// producers send to batches, then close it
	<-f.Done()

For contention-free parallel feeding without a channel hop, see
pkg/reduction/sharded.
*/
package streaming
