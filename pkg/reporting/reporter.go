package reporting

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/common/validation"
	"github.com/vnykmshr/runstats/pkg/metrics"
	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
)

// Reporter periodically snapshots an accumulator and hands the snapshot to
// a sink. With ResetAfterReport it produces tumbling windows: each report
// covers only the observations since the previous one.
type Reporter interface {
	// Start begins the reporting loop. It fails with ErrClosed if the
	// reporter was already started.
	Start(ctx context.Context) error

	// Stop ends the reporting loop and returns a channel that is closed
	// once the loop has exited.
	Stop() <-chan struct{}

	// Done returns a channel that is closed when the loop has exited.
	Done() <-chan struct{}

	// Flush emits a report immediately, outside the schedule.
	Flush() error

	// Reports returns the number of reports emitted so far.
	Reports() int64
}

// Report is one emitted snapshot.
type Report struct {
	// Snapshot is the accumulator state at emission time.
	Snapshot runstats.Snapshot

	// Result is the per-channel statistic derived from Snapshot.
	Result []float64

	// At is when the report was taken.
	At time.Time

	// Sequence numbers reports from 1.
	Sequence int64
}

// Config holds configuration options for creating a Reporter.
type Config struct {
	// Accumulator is snapshotted on every report.
	Accumulator runstats.Accumulator

	// Sink receives every report. It is called from the reporter's
	// goroutine, so slow sinks delay subsequent reports.
	Sink func(Report)

	// Spec is a cron expression with a seconds field, for example
	// "0 * * * * *" for the top of every minute. Exactly one of Spec and
	// Interval must be set.
	Spec string

	// Interval emits a report every fixed duration.
	Interval time.Duration

	// ResetAfterReport clears the accumulator after each report, turning
	// the running statistic into a tumbling window.
	ResetAfterReport bool

	// Lock, when set, is held while snapshotting and resetting the
	// accumulator. Required if other goroutines mutate the accumulator
	// while the reporter runs.
	Lock sync.Locker

	// Location is the time zone for cron scheduling. Defaults to
	// time.Local.
	Location *time.Location
}

// reporter implements Reporter.
type reporter struct {
	config   Config
	schedule cron.Schedule

	name     string
	registry *metrics.Registry

	started int32 // atomic
	stopCh  chan struct{}
	done    chan struct{}

	reports int64 // atomic
}

// cronParser accepts the same seconds-granularity expressions across the
// package.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// New creates a reporter for the given accumulator and sink.
func New(config Config) (Reporter, error) {
	if err := validation.ValidateNotNil("reporting", "accumulator", config.Accumulator); err != nil {
		return nil, err
	}
	if config.Sink == nil {
		return nil, errors.NewValidationError("reporting", "sink", nil, "cannot be nil").
			WithHint("provide a function to receive reports")
	}
	if (config.Spec == "") == (config.Interval == 0) {
		return nil, errors.NewValidationError("reporting", "schedule", config.Spec, "exactly one of Spec and Interval must be set")
	}
	if config.Interval < 0 {
		return nil, errors.NewValidationError("reporting", "interval", config.Interval, "must be positive")
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	r := &reporter{
		config: config,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}

	if config.Spec != "" {
		schedule, err := cronParser.Parse(config.Spec)
		if err != nil {
			return nil, errors.NewValidationError("reporting", "spec", config.Spec, "invalid cron expression").
				WithHint("use six fields with a leading seconds field, e.g. \"0 * * * * *\"")
		}
		r.schedule = schedule
	}

	return r, nil
}

// NewWithMetrics creates a reporter that counts emitted reports in
// Prometheus under the given name.
func NewWithMetrics(config Config, name string, metricsConfig metrics.Config) (Reporter, error) {
	r, err := New(config)
	if err != nil {
		return nil, err
	}

	if metricsConfig.Enabled {
		registry := metrics.DefaultRegistry
		if metricsConfig.Registry != nil {
			registry = metrics.NewRegistry(metricsConfig.Registry)
		}
		impl := r.(*reporter)
		impl.name = name
		impl.registry = registry
	}

	return r, nil
}

// Start begins the reporting loop.
func (r *reporter) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&r.started, 0, 1) {
		return errors.NewOperationError("reporting", "Start", errors.ErrClosed).
			WithContext("reporter already started")
	}

	go r.run(ctx)
	return nil
}

// Stop ends the reporting loop.
func (r *reporter) Stop() <-chan struct{} {
	select {
	case <-r.stopCh:
		// Already stopping.
	default:
		close(r.stopCh)
	}
	return r.done
}

// Done returns the completion channel.
func (r *reporter) Done() <-chan struct{} {
	return r.done
}

// Flush emits a report immediately.
func (r *reporter) Flush() error {
	r.emit(time.Now())
	return nil
}

// Reports returns the number of reports emitted so far.
func (r *reporter) Reports() int64 {
	return atomic.LoadInt64(&r.reports)
}

// next returns when the following report is due.
func (r *reporter) next(now time.Time) time.Time {
	if r.schedule != nil {
		return r.schedule.Next(now.In(r.config.Location))
	}
	return now.Add(r.config.Interval)
}

// run is the reporting loop.
func (r *reporter) run(ctx context.Context) {
	defer close(r.done)

	timer := time.NewTimer(time.Until(r.next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case now := <-timer.C:
			r.emit(now)
			timer.Reset(time.Until(r.next(time.Now())))
		}
	}
}

// emit snapshots the accumulator and hands the report to the sink.
func (r *reporter) emit(now time.Time) {
	snapshot, result := r.read()
	seq := atomic.AddInt64(&r.reports, 1)

	if r.registry != nil {
		r.registry.ReportsEmitted.WithLabelValues(r.name).Inc()
		if r.config.ResetAfterReport {
			r.registry.WindowResets.WithLabelValues(r.name).Inc()
		}
	}

	r.config.Sink(Report{
		Snapshot: snapshot,
		Result:   result,
		At:       now,
		Sequence: seq,
	})
}

// read captures the accumulator state, resetting it when configured. The
// lock is held only around the accumulator access, never across the sink.
func (r *reporter) read() (runstats.Snapshot, []float64) {
	if r.config.Lock != nil {
		r.config.Lock.Lock()
		defer r.config.Lock.Unlock()
	}

	snapshot := r.config.Accumulator.Snapshot()
	result := r.config.Accumulator.Result()
	if r.config.ResetAfterReport {
		r.config.Accumulator.Reset()
	}
	return snapshot, result
}
