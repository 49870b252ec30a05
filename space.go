package targetspace

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Space is an ordered set of parameters and the layout of their encodings in
// one feature vector. Keys, dimension and bounds are fixed at construction.
//
// Thread safety:
// - Space is read-only after NewSpace returns
// - Safe for concurrent use from multiple goroutines
type Space struct {
	// keys is the parameter order used for every encode, decode and column layout.
	keys []string

	// params holds one descriptor per key.
	params map[string]Parameter

	// offsets[i] is the first column of keys[i] in the encoded vector.
	offsets []int

	// dim is the sum of all descriptor widths.
	dim int

	// bounds is the dim x 2 matrix of [low, high] rows.
	bounds *mat.Dense
}

//////
// Factory.
//////

// NewSpace builds a Space from bounds, in the given order.
//
// Parameters:
// - bounds: One Bound per parameter; names must be unique
//
// Returns:
// - *Space: The space
// - error: An error wrapping ErrConfiguration if any bound is malformed
//
// Usage example:
//
//	space, err := NewSpace(
//	    FloatBound("learning_rate", 0.0001, 0.1),
//	    IntBound("layers", 1, 8),
//	    CategoricalBound("optimizer", "sgd", "adam"),
//	)
//	// space.Dim() == 4
func NewSpace(bounds ...Bound) (*Space, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: at least one parameter is required", ErrConfiguration)
	}

	s := &Space{
		keys:    make([]string, 0, len(bounds)),
		params:  make(map[string]Parameter, len(bounds)),
		offsets: make([]int, 0, len(bounds)),
	}

	var rows []float64

	for _, b := range bounds {
		if _, ok := s.params[b.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrConfiguration, b.Name)
		}

		p, err := NewParameter(b)
		if err != nil {
			return nil, err
		}

		s.keys = append(s.keys, b.Name)
		s.params[b.Name] = p
		s.offsets = append(s.offsets, s.dim)
		s.dim += p.Width()

		for _, row := range p.BoundsRows() {
			rows = append(rows, row[0], row[1])
		}
	}

	s.bounds = mat.NewDense(s.dim, 2, rows)

	return s, nil
}

//////
// Methods.
//////

// Keys returns the parameter names in layout order.
func (s *Space) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Dim returns the length of an encoded vector.
func (s *Space) Dim() int {
	return s.dim
}

// Bounds returns a copy of the dim x 2 bounds matrix. Row i holds the
// [low, high] range of column i of an encoded vector.
func (s *Space) Bounds() *mat.Dense {
	return mat.DenseCopyOf(s.bounds)
}

// Parameter returns the descriptor for name.
func (s *Space) Parameter(name string) (Parameter, bool) {
	p, ok := s.params[name]

	return p, ok
}

// Encode converts a point of native values into a vector of length Dim.
// Extra entries in point are ignored.
//
// Returns:
// - []float64: The encoded vector
// - error: Wrapping ErrLookup if a key is missing, ErrDomain if a value is
// out of bounds or an unknown category
//
// Usage example:
//
//	x, err := space.Encode(Point{"learning_rate": 0.01, "layers": 3, "optimizer": "adam"})
//	// x == []float64{0.01, 3, 0, 1}
func (s *Space) Encode(point Point) ([]float64, error) {
	x := make([]float64, 0, s.dim)

	for _, key := range s.keys {
		value, ok := point[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLookup, key)
		}

		sub, err := s.params[key].ToFloat(value)
		if err != nil {
			return nil, err
		}

		x = append(x, sub...)
	}

	return x, nil
}

// Decode converts a vector of length Dim back into native values. Int
// parameters are rounded and clipped, categorical ones take the label at the
// argmax of their slice.
func (s *Space) Decode(x []float64) (Point, error) {
	if err := s.checkDim(x); err != nil {
		return nil, err
	}

	point := make(Point, len(s.keys))

	for i, key := range s.keys {
		value, err := s.params[key].ToParam(s.slice(x, i))
		if err != nil {
			return nil, err
		}

		point[key] = value
	}

	return point, nil
}

// Transform projects a relaxed vector onto the nearest feasible encoding:
// floats are kept, ints rounded and clipped, categoricals made one-hot.
func (s *Space) Transform(x []float64) ([]float64, error) {
	if err := s.checkDim(x); err != nil {
		return nil, err
	}

	out := make([]float64, 0, s.dim)

	for i, key := range s.keys {
		sub, err := s.params[key].Transform(s.slice(x, i))
		if err != nil {
			return nil, err
		}

		out = append(out, sub...)
	}

	return out, nil
}

// RandomSample draws a feasible encoded vector uniformly at random.
//
// Important notes:
// - rng is not safe for concurrent use; don't share it between goroutines
func (s *Space) RandomSample(rng *rand.Rand) []float64 {
	x := make([]float64, 0, s.dim)

	for _, key := range s.keys {
		x = append(x, s.params[key].Sample(rng)...)
	}

	return x
}

func (s *Space) slice(x []float64, i int) []float64 {
	start := s.offsets[i]

	return x[start : start+s.params[s.keys[i]].Width()]
}

func (s *Space) checkDim(x []float64) error {
	if len(x) != s.dim {
		return fmt.Errorf("%w: vector has length %d, want %d", ErrDimension, len(x), s.dim)
	}

	return nil
}
