package sharded

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/vnykmshr/runstats/internal/testutil"
	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
)

func meanConfig(channels, shards int) Config {
	return Config{
		Accumulator: runstats.Config{Channels: channels, Reduction: runstats.Mean},
		Shards:      shards,
	}
}

func TestNewSafe(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{"valid", meanConfig(2, 4), false},
		{"single shard", meanConfig(1, 1), false},
		{"zero shards", meanConfig(2, 0), true},
		{"negative shards", meanConfig(2, -1), true},
		{"invalid accumulator", Config{Accumulator: runstats.Config{Channels: 0}, Shards: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSafe(tt.config)
			if tt.wantError {
				testutil.AssertError(t, err)
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, s.Shards(), tt.config.Shards)
		})
	}
}

func TestShard_OutOfRange(t *testing.T) {
	s := New(meanConfig(1, 2))

	for _, i := range []int{-1, 2} {
		_, err := s.Shard(i)
		testutil.AssertError(t, err)
	}
}

// Feeding shards concurrently and combining must equal feeding everything
// into a single accumulator.
func TestCombine_MatchesSequential(t *testing.T) {
	for _, reduction := range []runstats.Reduction{runstats.Mean, runstats.RMS} {
		t.Run(reduction.String(), func(t *testing.T) {
			const shards = 4
			rng := rand.New(rand.NewSource(41))

			batches := make([][][]float64, shards)
			for i := range batches {
				batches[i] = testutil.RandomBatch(rng, 10+rng.Intn(20), 3)
			}

			s := New(Config{
				Accumulator: runstats.Config{Channels: 3, Reduction: reduction},
				Shards:      shards,
			})

			var wg sync.WaitGroup
			for i := 0; i < shards; i++ {
				shard, err := s.Shard(i)
				testutil.AssertNoError(t, err)

				wg.Add(1)
				go func(acc runstats.Accumulator, batch [][]float64) {
					defer wg.Done()
					if _, err := acc.Accumulate(batch); err != nil {
						t.Error(err)
					}
				}(shard, batches[i])
			}
			wg.Wait()

			sequential := runstats.NewWithConfig(runstats.Config{Channels: 3, Reduction: reduction})
			_, err := sequential.Accumulate(testutil.Flatten(batches...))
			testutil.AssertNoError(t, err)

			combined, err := s.Combine()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, combined.Count(), sequential.Count())
			testutil.AssertFloatsInDelta(t, combined.Result(), sequential.Result(), 1e-9)

			result, err := s.Result()
			testutil.AssertNoError(t, err)
			testutil.AssertFloatsInDelta(t, result, sequential.Result(), 1e-9)
		})
	}
}

func TestCombine_Empty(t *testing.T) {
	s := New(meanConfig(2, 3))

	_, err := s.Combine()
	testutil.AssertError(t, err)
	if !errors.IsEmptyAccumulator(err) {
		t.Errorf("expected empty accumulator error, got %v", err)
	}
}

func TestReset(t *testing.T) {
	s := New(meanConfig(1, 2))

	shard, err := s.Shard(0)
	testutil.AssertNoError(t, err)
	_, err = shard.Accumulate([][]float64{{1}})
	testutil.AssertNoError(t, err)

	s.Reset()

	_, err = s.Combine()
	testutil.AssertError(t, err)
	if !errors.IsEmptyAccumulator(err) {
		t.Errorf("expected empty accumulator error after reset, got %v", err)
	}
}

// Combining does not disturb shard state; it can be repeated as a cheap
// point-in-time read while feeding is paused.
func TestCombine_Repeatable(t *testing.T) {
	s := New(meanConfig(1, 2))

	shard, err := s.Shard(1)
	testutil.AssertNoError(t, err)
	_, err = shard.Accumulate([][]float64{{2}, {4}})
	testutil.AssertNoError(t, err)

	first, err := s.Result()
	testutil.AssertNoError(t, err)
	second, err := s.Result()
	testutil.AssertNoError(t, err)

	testutil.AssertFloatsInDelta(t, first, second, 0)
	testutil.AssertInDelta(t, first[0], 3, testutil.FloatTolerance)
}
