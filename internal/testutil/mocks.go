package testutil

import (
	"math/rand"
)

// RandomBatch generates a deterministic pseudo-random batch of rows x channels
// observations from the given seed. Deterministic so failures reproduce.
func RandomBatch(rng *rand.Rand, rows, channels int) [][]float64 {
	batch := make([][]float64, rows)
	for i := range batch {
		row := make([]float64, channels)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		batch[i] = row
	}
	return batch
}

// Flatten concatenates all rows of the given batches into a single batch.
func Flatten(batches ...[][]float64) [][]float64 {
	var out [][]float64
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}
