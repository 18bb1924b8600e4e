package util

import "math"

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
