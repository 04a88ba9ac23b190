package sharded

import (
	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/common/validation"
	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
)

// Sharded owns one accumulator per worker so concurrent producers never
// share mutable state. Each goroutine feeds its own shard exclusively;
// Combine merges the shards into a single result once feeding has stopped.
//
// Sharded performs no locking of its own. The caller is responsible for
// quiescing all feeders before calling Combine, Result, or Reset.
type Sharded struct {
	config runstats.Config
	shards []runstats.Accumulator
}

// Config holds configuration options for creating a Sharded set.
type Config struct {
	// Accumulator configures every shard.
	Accumulator runstats.Config

	// Shards is the number of independent accumulators, typically one per
	// producer goroutine.
	Shards int
}

// New creates a sharded accumulator set, panicking on invalid configuration.
// Use NewSafe in production code.
func New(config Config) *Sharded {
	s, err := NewSafe(config)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSafe creates a sharded accumulator set with validation that returns an
// error instead of panicking.
func NewSafe(config Config) (*Sharded, error) {
	if err := validation.ValidatePositive("sharded", "shards", config.Shards); err != nil {
		return nil, err
	}

	shards := make([]runstats.Accumulator, config.Shards)
	for i := range shards {
		acc, err := runstats.NewWithConfigSafe(config.Accumulator)
		if err != nil {
			return nil, err
		}
		shards[i] = acc
	}

	return &Sharded{config: config.Accumulator, shards: shards}, nil
}

// Shard returns the accumulator owned by worker i.
func (s *Sharded) Shard(i int) (runstats.Accumulator, error) {
	if err := validation.ValidateIndexInRange("sharded", "shard", i, len(s.shards)); err != nil {
		return nil, err
	}
	return s.shards[i], nil
}

// Shards returns the number of shards.
func (s *Sharded) Shards() int {
	return len(s.shards)
}

// Combine merges every shard into a fresh accumulator and returns it.
// Fails with ErrEmptyAccumulator if no shard has seen any observations.
func (s *Sharded) Combine() (runstats.Accumulator, error) {
	combined, err := runstats.NewWithConfigSafe(s.config)
	if err != nil {
		return nil, err
	}

	for _, shard := range s.shards {
		if err := combined.Merge(shard.Snapshot()); err != nil {
			return nil, err
		}
	}

	if combined.Count() == 0 {
		return nil, errors.NewOperationError("sharded", "Combine", errors.ErrEmptyAccumulator).
			WithContext("no shard has accumulated any observations")
	}

	return combined, nil
}

// Result combines all shards and returns the per-channel statistic.
func (s *Sharded) Result() ([]float64, error) {
	combined, err := s.Combine()
	if err != nil {
		return nil, err
	}
	return combined.Result(), nil
}

// Reset returns every shard to its initial empty state.
func (s *Sharded) Reset() {
	for _, shard := range s.shards {
		shard.Reset()
	}
}
