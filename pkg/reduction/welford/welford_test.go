package welford

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vnykmshr/runstats/internal/testutil"
)

// twoPass computes mean and population variance directly for comparison.
func twoPass(values []float64) (mean, variance float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, variance
}

func TestWelford_MatchesTwoPass(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	values := make([]float64, 500)
	for i := range values {
		values[i] = rng.NormFloat64()*3 + 100
	}

	var w Welford
	w.AddBatch(values)

	wantMean, wantVar := twoPass(values)
	testutil.AssertEqual(t, w.Count(), int64(500))
	testutil.AssertInDelta(t, w.Mean(), wantMean, 1e-9)
	testutil.AssertInDelta(t, w.Variance(), wantVar, 1e-9)
	testutil.AssertInDelta(t, w.StdDev(), math.Sqrt(wantVar), 1e-9)
}

func TestWelford_SampleVariance(t *testing.T) {
	var w Welford
	w.AddBatch([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	// Known dataset: population variance 4, sample variance 32/7.
	testutil.AssertInDelta(t, w.Mean(), 5, testutil.FloatTolerance)
	testutil.AssertInDelta(t, w.Variance(), 4, testutil.FloatTolerance)
	testutil.AssertInDelta(t, w.SampleVariance(), 32.0/7.0, testutil.FloatTolerance)
	testutil.AssertInDelta(t, w.SampleStdDev(), math.Sqrt(32.0/7.0), testutil.FloatTolerance)
}

func TestWelford_FewObservations(t *testing.T) {
	var w Welford
	testutil.AssertEqual(t, w.Count(), int64(0))
	testutil.AssertInDelta(t, w.Mean(), 0, 0)
	testutil.AssertInDelta(t, w.Variance(), 0, 0)

	w.Add(42)
	testutil.AssertEqual(t, w.Count(), int64(1))
	testutil.AssertInDelta(t, w.Mean(), 42, 0)
	// Variance is undefined below 2 observations; reported as 0.
	testutil.AssertInDelta(t, w.Variance(), 0, 0)
	testutil.AssertInDelta(t, w.SampleVariance(), 0, 0)
}

func TestWelford_Reset(t *testing.T) {
	var w Welford
	w.AddBatch([]float64{1, 2, 3})
	w.Reset()

	testutil.AssertEqual(t, w.Count(), int64(0))

	w.Add(5)
	fresh := New()
	fresh.Add(5)
	testutil.AssertInDelta(t, w.Mean(), fresh.Mean(), 0)
}

func TestWelford_Merge(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	a := make([]float64, 100)
	b := make([]float64, 250)
	for i := range a {
		a[i] = rng.NormFloat64()
	}
	for i := range b {
		b[i] = rng.NormFloat64() + 10
	}

	var left, right, combined Welford
	left.AddBatch(a)
	right.AddBatch(b)
	combined.AddBatch(a)
	combined.AddBatch(b)

	left.Merge(&right)

	testutil.AssertEqual(t, left.Count(), combined.Count())
	testutil.AssertInDelta(t, left.Mean(), combined.Mean(), 1e-9)
	testutil.AssertInDelta(t, left.Variance(), combined.Variance(), 1e-9)
}

func TestWelford_MergeEmpty(t *testing.T) {
	var w, empty Welford
	w.AddBatch([]float64{1, 2, 3})

	w.Merge(&empty)
	testutil.AssertEqual(t, w.Count(), int64(3))
	testutil.AssertInDelta(t, w.Mean(), 2, testutil.FloatTolerance)

	// Merging into an empty accumulator copies the other side.
	var target Welford
	target.Merge(&w)
	testutil.AssertEqual(t, target.Count(), int64(3))
	testutil.AssertInDelta(t, target.Mean(), 2, testutil.FloatTolerance)
}

func BenchmarkAdd(b *testing.B) {
	var w Welford
	for i := 0; i < b.N; i++ {
		w.Add(float64(i & 1023))
	}
}

func BenchmarkMerge(b *testing.B) {
	var other Welford
	other.AddBatch([]float64{1, 2, 3, 4, 5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var w Welford
		w.Merge(&other)
	}
}
