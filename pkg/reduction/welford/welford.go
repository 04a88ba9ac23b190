package welford

import "math"

// Welford maintains a one-pass running mean and variance using Welford's
// online algorithm. The zero value is ready to use.
//
// Like the runstats accumulators, a Welford is not safe for concurrent use;
// shard per goroutine and Merge, or serialize externally.
type Welford struct {
	count int64
	mean  float64
	m2    float64
}

// New creates an empty Welford accumulator.
func New() *Welford {
	return &Welford{}
}

// Add incorporates a single observation into the running statistics.
func (w *Welford) Add(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	delta2 := x - w.mean
	w.m2 += delta * delta2
}

// AddBatch incorporates each value of the batch in order.
func (w *Welford) AddBatch(values []float64) {
	for _, x := range values {
		w.Add(x)
	}
}

// Count returns the number of observations added.
func (w *Welford) Count() int64 {
	return w.count
}

// Mean returns the running mean, or 0 if no observations were added.
func (w *Welford) Mean() float64 {
	return w.mean
}

// Variance returns the population variance (M2/n).
// Returns 0 if fewer than 2 observations were added.
func (w *Welford) Variance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count)
}

// SampleVariance returns the sample variance (M2/(n-1)).
// Returns 0 if fewer than 2 observations were added.
func (w *Welford) SampleVariance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count-1)
}

// StdDev returns the population standard deviation.
func (w *Welford) StdDev() float64 {
	return math.Sqrt(w.Variance())
}

// SampleStdDev returns the sample standard deviation.
func (w *Welford) SampleStdDev() float64 {
	return math.Sqrt(w.SampleVariance())
}

// Reset returns the accumulator to its initial empty state.
func (w *Welford) Reset() {
	w.count = 0
	w.mean = 0
	w.m2 = 0
}

// Merge folds another accumulator's statistics into this one, producing the
// same result as if all observations had been added to a single accumulator
// (Chan et al. parallel combination). The other accumulator is not modified.
func (w *Welford) Merge(other *Welford) {
	if other.count == 0 {
		return
	}
	if w.count == 0 {
		w.count = other.count
		w.mean = other.mean
		w.m2 = other.m2
		return
	}

	total := w.count + other.count
	delta := other.mean - w.mean
	w.mean += delta * float64(other.count) / float64(total)
	w.m2 += other.m2 + delta*delta*float64(w.count)*float64(other.count)/float64(total)
	w.count = total
}
