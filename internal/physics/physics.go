// Package physics provides collision and range utilities for the field.
package physics

import "math"

// Clamp limits v to the closed range [lo, hi].
// If lo > hi (degenerate range), lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Within reports whether v lies in the closed range [lo, lo+span].
func Within(v, lo, span float64) bool {
	return v >= lo && v <= lo+span
}

// PointInRect checks if a point is inside (or on the edge of) an axis-aligned rectangle.
func PointInRect(px, py, x, y, w, h float64) bool {
	return Within(px, x, w) && Within(py, y, h)
}

// Normalize returns where v sits along [lo, lo+span] as a value in [0, 1].
// Values outside the range are clamped; a zero span yields 0.5.
func Normalize(v, lo, span float64) float64 {
	if span == 0 {
		return 0.5
	}
	return Clamp((v-lo)/span, 0, 1)
}

// WithSign returns magnitude |m| carrying the sign of positive (true = +).
func WithSign(m float64, positive bool) float64 {
	m = math.Abs(m)
	if positive {
		return m
	}
	return -m
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}
