package runstats

import (
	"encoding/json"
	"fmt"

	"github.com/vnykmshr/runstats/pkg/common/errors"
)

// Reduction identifies the statistic an Accumulator maintains.
type Reduction int

const (
	// Mean maintains the running arithmetic mean of all observations.
	Mean Reduction = iota

	// RMS maintains the running root-mean-square, sqrt(mean(x^2)),
	// of all observations.
	RMS
)

// String returns the lowercase name of the reduction.
func (r Reduction) String() string {
	switch r {
	case Mean:
		return "mean"
	case RMS:
		return "rms"
	default:
		return fmt.Sprintf("reduction(%d)", int(r))
	}
}

// Valid reports whether r is a supported reduction.
func (r Reduction) Valid() bool {
	return r == Mean || r == RMS
}

// MarshalJSON encodes the reduction as its string name.
func (r Reduction) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.NewValidationError("runstats", "reduction", int(r), "unknown reduction")
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a reduction from its string name.
func (r *Reduction) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "mean":
		*r = Mean
	case "rms":
		*r = RMS
	default:
		return errors.NewValidationError("runstats", "reduction", name, "unknown reduction").
			WithHint(`use "mean" or "rms"`)
	}
	return nil
}

// Accumulator maintains running aggregate statistics over a stream of
// observation batches without retaining the observations themselves.
//
// An Accumulator is not safe for concurrent use. Callers feeding from
// multiple goroutines must either serialize calls (see pkg/streaming/feeder)
// or give each goroutine its own accumulator and merge the results
// (see pkg/reduction/sharded).
type Accumulator interface {
	// Accumulate folds a batch of observations into the running statistics.
	// Every row must have exactly Channels values; a row of the wrong width
	// fails with ErrShapeMismatch and leaves the accumulator unchanged.
	// It returns the reduction of this batch alone, or nil for an empty batch.
	Accumulate(batch [][]float64) ([]float64, error)

	// AccumulateChannel folds scalar observations into a single channel,
	// leaving the other channels untouched. Fails with ErrShapeMismatch
	// if the channel index is out of range.
	AccumulateChannel(ch int, values []float64) error

	// Result returns the per-channel statistic computed from current state.
	// Channels that have seen no observations report 0.
	Result() []float64

	// ResultChannel returns the statistic for a single channel.
	ResultChannel(ch int) (float64, error)

	// Merge folds another accumulator's snapshot into this one, weighted by
	// each side's observation counts. The snapshot must carry the same
	// reduction and channel count.
	Merge(snap Snapshot) error

	// Snapshot returns a copy of the accumulator's state sufficient to
	// reconstruct or merge it.
	Snapshot() Snapshot

	// Reset returns the accumulator to its initial empty state.
	Reset()

	// Count returns the total number of scalar observations folded in
	// since the last reset.
	Count() int64

	// Counts returns a copy of the per-channel observation counts.
	Counts() []int64

	// Channels returns the configured channel count.
	Channels() int

	// Reduction returns the statistic this accumulator maintains.
	Reduction() Reduction
}

// Snapshot is the minimal transferable state of an accumulator: per-channel
// observation counts and the running mean of the reduced quantity (the
// values themselves for Mean, their squares for RMS).
type Snapshot struct {
	Reduction Reduction `json:"reduction"`
	Counts    []int64   `json:"counts"`
	State     []float64 `json:"state"`
}

// Channels returns the snapshot's channel count.
func (s Snapshot) Channels() int {
	return len(s.Counts)
}

// Count returns the total number of observations the snapshot represents.
func (s Snapshot) Count() int64 {
	var total int64
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Config holds configuration options for creating a new Accumulator.
type Config struct {
	// Channels is the number of independently tracked dimensions.
	Channels int

	// Reduction selects the statistic to maintain.
	Reduction Reduction
}

// accumulator implements Accumulator with in-place incremental updates.
type accumulator struct {
	channels  int
	reduction Reduction
	counts    []int64
	state     []float64 // running mean of the reduced quantity per channel
}

// New creates an accumulator, panicking on invalid parameters.
// Use NewSafe in production code.
func New(channels int, reduction Reduction) Accumulator {
	acc, err := NewSafe(channels, reduction)
	if err != nil {
		panic(err)
	}
	return acc
}

// NewSafe creates an accumulator with validation that returns an error
// instead of panicking. This is the recommended constructor.
func NewSafe(channels int, reduction Reduction) (Accumulator, error) {
	return NewWithConfigSafe(Config{Channels: channels, Reduction: reduction})
}

// NewWithConfig creates an accumulator from a Config, panicking on invalid
// configuration. Use NewWithConfigSafe in production code.
func NewWithConfig(config Config) Accumulator {
	acc, err := NewWithConfigSafe(config)
	if err != nil {
		panic(err)
	}
	return acc
}

// NewWithConfigSafe creates an accumulator from a Config with validation
// that returns an error instead of panicking.
func NewWithConfigSafe(config Config) (Accumulator, error) {
	if config.Channels <= 0 {
		return nil, errors.NewValidationError("runstats", "channels", config.Channels, "must be positive").
			WithHint("configure at least one channel")
	}
	if !config.Reduction.Valid() {
		return nil, errors.NewValidationError("runstats", "reduction", int(config.Reduction), "unknown reduction").
			WithHint("use Mean or RMS")
	}

	return &accumulator{
		channels:  config.Channels,
		reduction: config.Reduction,
		counts:    make([]int64, config.Channels),
		state:     make([]float64, config.Channels),
	}, nil
}
