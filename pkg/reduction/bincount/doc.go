// Package bincount provides streaming occurrence counting of small
// non-negative integers, one counter per bin.
//
// A Bincount is the integer sibling of the float accumulators in
// pkg/reduction: batches fold in one call at a time, nothing is retained,
// and independently fed counters merge exactly.
//
//	bc := bincount.New(4)
//	_ = bc.Add([]int64{0, 1, 1, 3})
//	fmt.Println(bc.Counts()) // [1 2 0 1]
package bincount
