package postprocess

import "math"

// clampInt restricts v to the range lo..hi
func clampInt(v, lo, hi int) int {

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// clampFloat restricts v to the range lo..hi
func clampFloat(v, lo, hi float32) float32 {

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// roundInt rounds to the nearest integer, half away from zero
func roundInt(v float32) int {
	return int(math.Round(float64(v)))
}

// squaredDistance is the squared euclidean distance between two points
func squaredDistance(y1, x1, y2, x2 float32) float32 {
	dy := y2 - y1
	dx := x2 - x1
	return dy*dy + dx*dx
}
