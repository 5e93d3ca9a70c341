package layer

import "math"

// velocityBorder returns boundary i of n dynamics levels in the 0-128
// trigger space. The exponent reshapes an even distribution of the
// normalized [0,1] range: exponent 1 spaces the boundaries evenly, values
// below 1 push them up (narrowing the loudest band), values above 1 pull
// them down (widening it). The result truncates toward zero.
func velocityBorder(i, n int, exponent float64) int {
	return int(math.Pow(float64(i)/float64(n), exponent) * 128)
}
