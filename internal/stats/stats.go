// Package stats computes summary statistics over numeric sample sequences.
// It is pure computation; every other telemetry component builds on it.
package stats

import "math"

// Summary holds the mean and population standard deviation of a sequence.
type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Compute returns the mean and population standard deviation (divide by N,
// not N-1) of values. An empty input yields a zero Summary; callers treat a
// zero-length axis as "no data", not as a zero reading.
func Compute(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return Summary{
		Mean: mean,
		Std:  math.Sqrt(sq / float64(len(values))),
	}
}

// Magnitude returns the Euclidean norm of a 3-axis vector reading.
func Magnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
