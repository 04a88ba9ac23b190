package bincount

import (
	"fmt"

	"github.com/vnykmshr/runstats/pkg/common/errors"
)

// Bincount counts occurrences of small non-negative integers across a stream
// of batches, one counter per bin. Not safe for concurrent use.
type Bincount struct {
	counts []int64
}

// New creates a bincounter with the given number of bins, panicking on an
// invalid bin count. Use NewSafe in production code.
func New(bins int) *Bincount {
	bc, err := NewSafe(bins)
	if err != nil {
		panic(err)
	}
	return bc
}

// NewSafe creates a bincounter with validation that returns an error instead
// of panicking.
func NewSafe(bins int) (*Bincount, error) {
	if bins <= 0 {
		return nil, errors.NewValidationError("bincount", "bins", bins, "must be positive").
			WithHint("configure at least one bin")
	}
	return &Bincount{counts: make([]int64, bins)}, nil
}

// Add counts each value of the batch into its bin. A value outside
// [0, Bins()) fails with ErrShapeMismatch and leaves all counters unchanged.
func (b *Bincount) Add(values []int64) error {
	for i, v := range values {
		if v < 0 || v >= int64(len(b.counts)) {
			return errors.NewOperationError("bincount", "Add", errors.ErrShapeMismatch).
				WithContext(fmt.Sprintf("value %d at index %d out of range [0, %d)", v, i, len(b.counts)))
		}
	}
	for _, v := range values {
		b.counts[v]++
	}
	return nil
}

// AddValue counts a single value into its bin.
func (b *Bincount) AddValue(v int64) error {
	if v < 0 || v >= int64(len(b.counts)) {
		return errors.NewOperationError("bincount", "AddValue", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("value %d out of range [0, %d)", v, len(b.counts)))
	}
	b.counts[v]++
	return nil
}

// Counts returns a copy of the per-bin counters.
func (b *Bincount) Counts() []int64 {
	counts := make([]int64, len(b.counts))
	copy(counts, b.counts)
	return counts
}

// Count returns the counter for a single bin.
func (b *Bincount) Count(bin int) (int64, error) {
	if bin < 0 || bin >= len(b.counts) {
		return 0, errors.NewOperationError("bincount", "Count", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("bin %d out of range [0, %d)", bin, len(b.counts)))
	}
	return b.counts[bin], nil
}

// Total returns the total number of values counted since the last reset.
func (b *Bincount) Total() int64 {
	var total int64
	for _, n := range b.counts {
		total += n
	}
	return total
}

// Bins returns the configured number of bins.
func (b *Bincount) Bins() int {
	return len(b.counts)
}

// Reset zeroes all counters.
func (b *Bincount) Reset() {
	for i := range b.counts {
		b.counts[i] = 0
	}
}

// Merge adds another bincounter's counts into this one. The other counter
// must have the same number of bins and is not modified.
func (b *Bincount) Merge(other *Bincount) error {
	if len(other.counts) != len(b.counts) {
		return errors.NewOperationError("bincount", "Merge", errors.ErrShapeMismatch).
			WithContext(fmt.Sprintf("other has %d bins, want %d", len(other.counts), len(b.counts)))
	}
	for i, n := range other.counts {
		b.counts[i] += n
	}
	return nil
}
