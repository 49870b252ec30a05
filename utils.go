package targetspace

import (
	"math"
	"time"

	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// toFloat64 converts any Go integer or float value to float64.
//
// Returns:
// - float64: The converted value
// - bool: false if value isn't numeric
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return number(v), true
	case int8:
		return number(v), true
	case int16:
		return number(v), true
	case int32:
		return number(v), true
	case int64:
		return number(v), true
	case uint:
		return number(v), true
	case uint8:
		return number(v), true
	case uint16:
		return number(v), true
	case uint32:
		return number(v), true
	case uint64:
		return number(v), true
	default:
		return 0, false
	}
}

// number widens any integer or float to float64.
func number[T constraints.Integer | constraints.Float](v T) float64 {
	return float64(v)
}

// isFinite reports whether x is neither NaN nor infinite.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// clip bounds x into [low, high].
func clip[T constraints.Integer | constraints.Float](x, low, high T) T {
	if x < low {
		return low
	}

	if x > high {
		return high
	}

	return x
}

// argmax returns the index of the largest element, the first one on ties.
// NaN elements are never selected unless every element is NaN.
func argmax(x []float64) int {
	best := 0

	for i := 1; i < len(x); i++ {
		if x[i] > x[best] || (math.IsNaN(x[best]) && !math.IsNaN(x[i])) {
			best = i
		}
	}

	return best
}

// measureTarget runs the objective with the given parameters and measures its
// execution time.
//
// Important notes:
// - Time measurement includes only the execution of f
// - The error from f is returned unchanged
func measureTarget(f TargetFunc, params Point) (float64, time.Duration, error) {
	start := time.Now()

	value, err := f(params)

	return value, time.Since(start), err
}

// cloneFloats returns an independent copy of x.
func cloneFloats(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	return out
}

// clonePoint returns a shallow copy of p. Values are scalars or strings.
func clonePoint(p Point) Point {
	out := make(Point, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}
