package runstats

import (
	"fmt"
	"math"

	"github.com/vnykmshr/runstats/pkg/common/errors"
)

// Accumulate folds a batch of observations into the running statistics.
func (a *accumulator) Accumulate(batch [][]float64) ([]float64, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	// Validate the whole batch before touching state so a malformed row
	// cannot leave a partial update behind.
	for i, row := range batch {
		if len(row) != a.channels {
			return nil, errors.NewOperationError("runstats", "Accumulate", errors.ErrShapeMismatch).
				WithContext(fmt.Sprintf("row %d has %d values, want %d", i, len(row), a.channels))
		}
	}

	n := int64(len(batch))
	sums := make([]float64, a.channels)
	for _, row := range batch {
		for j, v := range row {
			sums[j] += a.reduce(v)
		}
	}

	result := make([]float64, a.channels)
	for j := range sums {
		a.fold(j, sums[j], n)
		result[j] = a.report(sums[j] / float64(n))
	}

	return result, nil
}

// AccumulateChannel folds scalar observations into a single channel.
func (a *accumulator) AccumulateChannel(ch int, values []float64) error {
	if ch < 0 || ch >= a.channels {
		return errors.NewOperationError("runstats", "AccumulateChannel", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("channel %d out of range [0, %d)", ch, a.channels))
	}
	if len(values) == 0 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += a.reduce(v)
	}
	a.fold(ch, sum, int64(len(values)))

	return nil
}

// Result returns the per-channel statistic. Channels with no observations
// report 0.
func (a *accumulator) Result() []float64 {
	result := make([]float64, a.channels)
	for j := range result {
		if a.counts[j] == 0 {
			continue
		}
		result[j] = a.report(a.state[j])
	}
	return result
}

// ResultChannel returns the statistic for a single channel.
func (a *accumulator) ResultChannel(ch int) (float64, error) {
	if ch < 0 || ch >= a.channels {
		return 0, errors.NewOperationError("runstats", "ResultChannel", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("channel %d out of range [0, %d)", ch, a.channels))
	}
	if a.counts[ch] == 0 {
		return 0, nil
	}
	return a.report(a.state[ch]), nil
}

// Merge folds another accumulator's snapshot into this one.
func (a *accumulator) Merge(snap Snapshot) error {
	if snap.Reduction != a.reduction {
		return errors.NewOperationError("runstats", "Merge", errors.ErrReductionMismatch).
			WithContext(fmt.Sprintf("snapshot tracks %s, accumulator tracks %s", snap.Reduction, a.reduction))
	}
	if len(snap.Counts) != a.channels || len(snap.State) != a.channels {
		return errors.NewOperationError("runstats", "Merge", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("snapshot has %d channels, want %d", len(snap.Counts), a.channels))
	}

	for j := 0; j < a.channels; j++ {
		n := snap.Counts[j]
		if n == 0 {
			continue
		}
		total := a.counts[j] + n
		a.state[j] += (snap.State[j] - a.state[j]) * float64(n) / float64(total)
		a.counts[j] = total
	}

	return nil
}

// Snapshot returns a copy of the accumulator's state.
func (a *accumulator) Snapshot() Snapshot {
	counts := make([]int64, a.channels)
	state := make([]float64, a.channels)
	copy(counts, a.counts)
	copy(state, a.state)

	return Snapshot{
		Reduction: a.reduction,
		Counts:    counts,
		State:     state,
	}
}

// Reset returns the accumulator to its initial empty state.
func (a *accumulator) Reset() {
	for j := range a.counts {
		a.counts[j] = 0
		a.state[j] = 0
	}
}

// Count returns the total number of scalar observations folded in.
func (a *accumulator) Count() int64 {
	var total int64
	for _, n := range a.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the per-channel observation counts.
func (a *accumulator) Counts() []int64 {
	counts := make([]int64, a.channels)
	copy(counts, a.counts)
	return counts
}

// Channels returns the configured channel count.
func (a *accumulator) Channels() int {
	return a.channels
}

// Reduction returns the statistic this accumulator maintains.
func (a *accumulator) Reduction() Reduction {
	return a.reduction
}

// reduce maps an observation to the quantity whose mean is maintained.
func (a *accumulator) reduce(v float64) float64 {
	if a.reduction == RMS {
		return v * v
	}
	return v
}

// report maps the accumulated mean to the reported statistic.
func (a *accumulator) report(v float64) float64 {
	if a.reduction == RMS {
		// Rounding can push the mean of squares a hair below zero.
		if v < 0 {
			v = 0
		}
		return math.Sqrt(v)
	}
	return v
}

// fold applies the incremental mean update for channel j given the sum of
// n new reduced observations: mean += (sum - mean*n) / (count + n).
// This avoids re-averaging two already-rounded means and bounds per-step
// error growth over long streams.
func (a *accumulator) fold(j int, sum float64, n int64) {
	total := a.counts[j] + n
	a.state[j] += (sum - a.state[j]*float64(n)) / float64(total)
	a.counts[j] = total
}
