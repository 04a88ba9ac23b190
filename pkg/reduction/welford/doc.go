/*
Package welford provides one-pass mean, variance, and standard deviation
accumulation using Welford's online algorithm.

Unlike naive sum-of-squares accumulation, Welford's update keeps the
intermediate M2 term centered on the running mean, which stays numerically
stable when the variance is small relative to the magnitude of the values.

Basic usage:

	var w welford.Welford
	for _, latency := range latencies {
		w.Add(latency)
	}
	fmt.Println(w.Mean(), w.SampleStdDev())

Accumulators fed disjoint data combine exactly:

	var left, right welford.Welford
	left.AddBatch(a)
	right.AddBatch(b)
	left.Merge(&right) // statistics over a then b
*/
package welford
