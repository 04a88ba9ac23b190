/*
Package feeder serializes concurrent producers onto a single accumulator.

Accumulators are not safe for concurrent use. A Feeder owns the only
goroutine that mutates its accumulator; any number of producers send batches
into the source channel and the feeder folds them in arrival order.

	batches := make(chan [][]float64, 16)

	f, err := feeder.New(feeder.Config{
		Accumulator: acc,
		Source:      batches,
	})
	if err != nil {
		log.Fatal(err)
	}
	_ = f.Start(ctx)

	// ... producers send to batches ...
	close(batches)

	<-f.Done()
	if err := f.Err(); err != nil {
		log.Printf("feeding stopped early: %v", err)
	}
	fmt.Println(acc.Result())

Once Done is closed the accumulator is quiescent and safe to read from the
waiting goroutine.

For contention-free parallel feeding, prefer one accumulator per producer
and merge afterwards; see pkg/reduction/sharded.
*/
package feeder
