package utils

import "math"

// ClampInt limits v to the [min, max] range.
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampFloat limits v to the [min, max] range.
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// FloorScale multiplies value by factor and floors the result.
// Countable reward values (coins, XP) always round down.
func FloorScale(value int, factor float64) int {
	return int(math.Floor(float64(value) * factor))
}
