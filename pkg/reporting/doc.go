/*
Package reporting emits periodic accumulator snapshots to a sink.

A Reporter runs on either a fixed interval or a cron expression with a
seconds field. Each report carries the snapshot, the derived per-channel
result, a timestamp, and a sequence number. With ResetAfterReport the
accumulator is cleared after each report, so successive reports form
tumbling windows instead of an ever-growing running statistic.

	var mu sync.Mutex

	r, err := reporting.New(reporting.Config{
		Accumulator:      acc,
		Spec:             "0 * * * * *", // top of every minute
		ResetAfterReport: true,
		Lock:             &mu,
		Sink: func(report reporting.Report) {
			log.Printf("window %d: mean=%v over %d observations",
				report.Sequence, report.Result, report.Snapshot.Count())
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	_ = r.Start(ctx)
	defer r.Stop()

Accumulators are not safe for concurrent use. When other goroutines feed
the accumulator while the reporter runs, set Lock and hold the same lock
around every Accumulate call. The lock is held only while reading and
resetting, never across the sink.
*/
package reporting
