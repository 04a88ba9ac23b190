package feeder_test

import (
	"context"
	"fmt"
	"log"

	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
	"github.com/vnykmshr/runstats/pkg/streaming/feeder"
)

// Example demonstrates draining a batch channel into an accumulator.
func Example() {
	acc := runstats.New(1, runstats.Mean)
	batches := make(chan [][]float64, 4)

	f, err := feeder.New(feeder.Config{
		Accumulator: acc,
		Source:      batches,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := f.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	batches <- [][]float64{{1}, {2}, {3}}
	batches <- [][]float64{{4}, {5}}
	close(batches)

	<-f.Done()

	stats := f.Stats()
	fmt.Printf("batches=%d observations=%d mean=%.1f\n",
		stats.Batches, stats.Observations, acc.Result()[0])
	// Output: batches=2 observations=5 mean=3.0
}

// Example_continueOnError shows tolerating malformed batches while keeping
// the well-formed ones.
func Example_continueOnError() {
	acc := runstats.New(2, runstats.Mean)
	batches := make(chan [][]float64, 4)

	f, err := feeder.New(feeder.Config{
		Accumulator:     acc,
		Source:          batches,
		ContinueOnError: true,
		OnError: func(err error) {
			fmt.Println("rejected a batch")
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := f.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	batches <- [][]float64{{1}} // wrong width, rejected
	batches <- [][]float64{{2, 4}}
	close(batches)

	<-f.Done()

	fmt.Printf("mean=%v\n", acc.Result())
	// Output:
	// rejected a batch
	// mean=[2 4]
}
