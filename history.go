package targetspace

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

//////
// Const, vars, types.
//////

// history is the append-only record of encoded points and their outcomes.
//
// Fields:
// - mu: RWMutex for thread-safe access to all fields
// - X: Encoded rows, each of length dim
// - Y: Observed outcomes, one per row of X
// - P: Native points, one per row of X, as the objective saw them
//
// Thread safety:
// - All fields are protected by the RWMutex
// - Rows are deep-copied on the way in and on the way out
type history struct {
	// mu protects access to all fields
	mu sync.RWMutex

	// dim is the length of every row of X
	dim int

	// X stores the encoded points, in probe order
	X [][]float64

	// Y stores the observed values at each point in X
	// Must have same length as X
	Y []float64

	// P stores the native point behind each row of X
	// Must have same length as X
	P []Point
}

//////
// Methods.
//////

// Append adds a new observation as the last row and returns its index.
//
// Important notes:
// - Creates a deep copy of x to prevent external modifications
// - X, Y and P grow together, so len(X) == len(Y) == len(P) always holds
func (h *history) Append(x []float64, y float64, p Point) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.X = append(h.X, cloneFloats(x))
	h.Y = append(h.Y, y)
	h.P = append(h.P, clonePoint(p))

	return len(h.Y) - 1
}

// Len returns the number of observations.
func (h *history) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.Y)
}

// Matrix returns the observations as an n x dim matrix. An empty history
// yields a zero-value (empty) Dense.
func (h *history) Matrix() *mat.Dense {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.X) == 0 {
		return &mat.Dense{}
	}

	data := make([]float64, 0, len(h.X)*h.dim)
	for _, row := range h.X {
		data = append(data, row...)
	}

	return mat.NewDense(len(h.X), h.dim, data)
}

// Targets returns a copy of the observed values.
func (h *history) Targets() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return cloneFloats(h.Y)
}

// Observations returns every native point with its value, in row order.
func (h *history) Observations() []Observation {
	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]Observation, len(h.Y))
	for i := range h.Y {
		res[i] = Observation{Params: clonePoint(h.P[i]), Target: h.Y[i]}
	}

	return res
}

// Best returns the observation with the largest value, the earliest one on
// ties. ok is false for an empty history.
func (h *history) Best() (obs Observation, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.Y) == 0 {
		return Observation{}, false
	}

	i := argmax(h.Y)

	return Observation{Params: clonePoint(h.P[i]), Target: h.Y[i]}, true
}

//////
// Factory.
//////

// newHistory creates an empty history for rows of length dim.
func newHistory(dim int) *history {
	return &history{dim: dim}
}
