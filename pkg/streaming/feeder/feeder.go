package feeder

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/common/validation"
	"github.com/vnykmshr/runstats/pkg/metrics"
	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
)

// Feeder drains observation batches from a channel into an accumulator.
// All accumulator mutations happen on the feeder's single goroutine, which
// provides the "one writer at a time" serialization accumulators require.
type Feeder interface {
	// Start begins draining the source. It fails with ErrClosed if the
	// feeder was already started.
	Start(ctx context.Context) error

	// Stop asks the feeder to stop draining and returns a channel that is
	// closed once the feeding goroutine has exited.
	Stop() <-chan struct{}

	// Done returns a channel that is closed when draining has finished,
	// whether because the source closed, the context was canceled, Stop was
	// called, or an accumulation error stopped the feeder.
	Done() <-chan struct{}

	// Err returns the error that stopped the feeder, if any.
	Err() error

	// Stats returns counters describing the feeder's progress.
	Stats() Stats
}

// Stats holds feeder progress counters.
type Stats struct {
	// Batches is the number of batches folded into the accumulator.
	Batches int64

	// Observations is the number of rows folded in across all batches.
	Observations int64

	// Errors is the number of batches rejected by the accumulator.
	Errors int64
}

// Config holds configuration options for creating a Feeder.
type Config struct {
	// Accumulator receives every drained batch.
	Accumulator runstats.Accumulator

	// Source supplies batches. The feeder finishes when it is closed.
	Source <-chan [][]float64

	// ContinueOnError keeps draining after a batch is rejected (for example
	// a malformed row). When false, the first error stops the feeder and is
	// reported by Err.
	ContinueOnError bool

	// OnError is called for every rejected batch, regardless of
	// ContinueOnError. Optional.
	OnError func(error)
}

// feeder implements Feeder.
type feeder struct {
	config Config

	name     string
	registry *metrics.Registry

	started int32 // atomic
	stopCh  chan struct{}
	done    chan struct{}

	mu  sync.Mutex
	err error

	batches      int64 // atomic
	observations int64 // atomic
	errCount     int64 // atomic
}

// New creates a feeder for the given accumulator and source.
func New(config Config) (Feeder, error) {
	if err := validation.ValidateNotNil("feeder", "accumulator", config.Accumulator); err != nil {
		return nil, err
	}
	if config.Source == nil {
		return nil, errors.NewValidationError("feeder", "source", nil, "cannot be nil").
			WithHint("provide a channel of batches")
	}

	return &feeder{
		config: config,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// NewWithMetrics creates a feeder that reports progress to Prometheus under
// the given name.
func NewWithMetrics(config Config, name string, metricsConfig metrics.Config) (Feeder, error) {
	f, err := New(config)
	if err != nil {
		return nil, err
	}

	if metricsConfig.Enabled {
		registry := metrics.DefaultRegistry
		if metricsConfig.Registry != nil {
			registry = metrics.NewRegistry(metricsConfig.Registry)
		}
		impl := f.(*feeder)
		impl.name = name
		impl.registry = registry
	}

	return f, nil
}

// Start begins draining the source.
func (f *feeder) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&f.started, 0, 1) {
		return errors.NewOperationError("feeder", "Start", errors.ErrClosed).
			WithContext("feeder already started")
	}

	if f.registry != nil {
		f.registry.FeederRunning.WithLabelValues(f.name).Set(1)
	}

	go f.run(ctx)
	return nil
}

// Stop asks the feeder to stop draining.
func (f *feeder) Stop() <-chan struct{} {
	select {
	case <-f.stopCh:
		// Already stopping.
	default:
		close(f.stopCh)
	}
	return f.done
}

// Done returns the completion channel.
func (f *feeder) Done() <-chan struct{} {
	return f.done
}

// Err returns the error that stopped the feeder, if any.
func (f *feeder) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Stats returns counters describing the feeder's progress.
func (f *feeder) Stats() Stats {
	return Stats{
		Batches:      atomic.LoadInt64(&f.batches),
		Observations: atomic.LoadInt64(&f.observations),
		Errors:       atomic.LoadInt64(&f.errCount),
	}
}

// run is the single feeding goroutine.
func (f *feeder) run(ctx context.Context) {
	defer close(f.done)
	defer func() {
		if f.registry != nil {
			f.registry.FeederRunning.WithLabelValues(f.name).Set(0)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			f.setErr(ctx.Err())
			return
		case <-f.stopCh:
			return
		case batch, ok := <-f.config.Source:
			if !ok {
				return
			}
			if !f.fold(batch) {
				return
			}
		}
	}
}

// fold applies one batch, returning false if the feeder should stop.
func (f *feeder) fold(batch [][]float64) bool {
	if _, err := f.config.Accumulator.Accumulate(batch); err != nil {
		atomic.AddInt64(&f.errCount, 1)
		if f.registry != nil {
			f.registry.FeederErrors.WithLabelValues(f.name).Inc()
		}
		if f.config.OnError != nil {
			f.config.OnError(err)
		}
		if !f.config.ContinueOnError {
			f.setErr(err)
			return false
		}
		return true
	}

	atomic.AddInt64(&f.batches, 1)
	atomic.AddInt64(&f.observations, int64(len(batch)))
	if f.registry != nil {
		f.registry.FeederBatches.WithLabelValues(f.name).Inc()
	}
	return true
}

func (f *feeder) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		f.err = err
	}
}
