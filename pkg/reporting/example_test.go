package reporting_test

import (
	"fmt"
	"log"
	"time"

	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
	"github.com/vnykmshr/runstats/pkg/reporting"
)

// Example demonstrates tumbling-window reports driven by Flush.
func Example() {
	acc := runstats.New(1, runstats.RMS)

	r, err := reporting.New(reporting.Config{
		Accumulator:      acc,
		Interval:         time.Minute,
		ResetAfterReport: true,
		Sink: func(report reporting.Report) {
			fmt.Printf("window %d: rms=%.1f over %d observations\n",
				report.Sequence, report.Result[0], report.Snapshot.Count())
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	_, _ = acc.Accumulate([][]float64{{3}, {4}, {0}})
	_ = r.Flush()

	_, _ = acc.Accumulate([][]float64{{5}})
	_ = r.Flush()

	// Output:
	// window 1: rms=2.9 over 3 observations
	// window 2: rms=5.0 over 1 observations
}
