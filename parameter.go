package targetspace

import (
	"fmt"
	"math"
	"math/rand"
)

// Parameter is the numeric representation of one named parameter. It knows
// its encoded width, its bounds, and how to move between a native value and
// its encoded sub-vector.
//
// Implementations are immutable after construction and safe for concurrent use.
type Parameter interface {
	// Name returns the parameter name.
	Name() string

	// Kind returns the parameter variant.
	Kind() Kind

	// Width returns the length of the encoded sub-vector.
	Width() int

	// BoundsRows returns one [low, high] row per encoded dimension.
	BoundsRows() [][2]float64

	// ToFloat encodes a native value into a sub-vector of length Width.
	// Errors wrap ErrDomain.
	ToFloat(value any) ([]float64, error)

	// ToParam decodes a sub-vector of length Width into a native value.
	ToParam(x []float64) (any, error)

	// Transform projects a relaxed sub-vector onto the nearest feasible
	// encoding, so that Transform(x) == ToFloat(ToParam(x)).
	Transform(x []float64) ([]float64, error)

	// Sample draws a feasible encoded sub-vector uniformly at random.
	Sample(rng *rand.Rand) []float64
}

//////
// Float.
//////

// FloatParameter is a continuous parameter in [low, high]. Its encoding is the
// value itself.
type FloatParameter struct {
	name      string
	low, high float64
}

// Name implements Parameter.
func (p *FloatParameter) Name() string { return p.name }

// Kind implements Parameter.
func (p *FloatParameter) Kind() Kind { return KindFloat }

// Width implements Parameter.
func (p *FloatParameter) Width() int { return 1 }

// BoundsRows implements Parameter.
func (p *FloatParameter) BoundsRows() [][2]float64 {
	return [][2]float64{{p.low, p.high}}
}

// ToFloat implements Parameter. The value must be a Go number inside the bounds.
func (p *FloatParameter) ToFloat(value any) ([]float64, error) {
	v, err := inRange(p.name, value, p.low, p.high)
	if err != nil {
		return nil, err
	}

	return []float64{v}, nil
}

// ToParam implements Parameter. It returns a float64.
func (p *FloatParameter) ToParam(x []float64) (any, error) {
	if err := checkWidth(p, x); err != nil {
		return nil, err
	}

	return x[0], nil
}

// Transform implements Parameter. Float encodings are already feasible.
func (p *FloatParameter) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(p, x); err != nil {
		return nil, err
	}

	return cloneFloats(x), nil
}

// Sample implements Parameter.
func (p *FloatParameter) Sample(rng *rand.Rand) []float64 {
	return []float64{p.low + rng.Float64()*(p.high-p.low)}
}

//////
// Int.
//////

// IntParameter is an integer parameter in [low, high], encoded as a real
// number. Decoding rounds to the nearest integer (half to even) and clips into
// the bounds, so it always yields a feasible value.
type IntParameter struct {
	name      string
	low, high int
}

// Name implements Parameter.
func (p *IntParameter) Name() string { return p.name }

// Kind implements Parameter.
func (p *IntParameter) Kind() Kind { return KindInt }

// Width implements Parameter.
func (p *IntParameter) Width() int { return 1 }

// BoundsRows implements Parameter.
func (p *IntParameter) BoundsRows() [][2]float64 {
	return [][2]float64{{float64(p.low), float64(p.high)}}
}

// ToFloat implements Parameter. The value must be a Go number inside the
// bounds. Non-integral values encode as is; Transform snaps them.
func (p *IntParameter) ToFloat(value any) ([]float64, error) {
	v, err := inRange(p.name, value, float64(p.low), float64(p.high))
	if err != nil {
		return nil, err
	}

	return []float64{v}, nil
}

// ToParam implements Parameter. It returns an int.
func (p *IntParameter) ToParam(x []float64) (any, error) {
	if err := checkWidth(p, x); err != nil {
		return nil, err
	}

	if math.IsNaN(x[0]) {
		return nil, fmt.Errorf("%w: %q: cannot decode NaN", ErrDomain, p.name)
	}

	return int(clip(math.RoundToEven(x[0]), float64(p.low), float64(p.high))), nil
}

// Transform implements Parameter.
func (p *IntParameter) Transform(x []float64) ([]float64, error) {
	v, err := p.ToParam(x)
	if err != nil {
		return nil, err
	}

	return []float64{float64(v.(int))}, nil
}

// Sample implements Parameter. Ranges wider than math.MaxInt64 are sampled by
// rejection over rng.Uint64.
func (p *IntParameter) Sample(rng *rand.Rand) []float64 {
	span := uint64(p.high) - uint64(p.low)

	var offset uint64
	if span < math.MaxInt64 {
		offset = uint64(rng.Int63n(int64(span) + 1))
	} else {
		for offset = rng.Uint64(); offset > span; offset = rng.Uint64() {
		}
	}

	// Wraps back into [low, high] when int(offset) overflows.
	return []float64{float64(p.low + int(offset))}
}

//////
// Categorical.
//////

// CategoricalParameter takes one of a fixed, ordered set of labels. It is
// one-hot encoded: one dimension per label, each bounded by [0, 1].
type CategoricalParameter struct {
	name       string
	categories []string
	index      map[string]int
}

// Name implements Parameter.
func (p *CategoricalParameter) Name() string { return p.name }

// Kind implements Parameter.
func (p *CategoricalParameter) Kind() Kind { return KindCategorical }

// Width implements Parameter.
func (p *CategoricalParameter) Width() int { return len(p.categories) }

// Categories returns a copy of the labels in encoding order.
func (p *CategoricalParameter) Categories() []string {
	out := make([]string, len(p.categories))
	copy(out, p.categories)

	return out
}

// BoundsRows implements Parameter.
func (p *CategoricalParameter) BoundsRows() [][2]float64 {
	rows := make([][2]float64, len(p.categories))
	for i := range rows {
		rows[i] = [2]float64{0, 1}
	}

	return rows
}

// ToFloat implements Parameter. The value must be one of the string labels.
func (p *CategoricalParameter) ToFloat(value any) ([]float64, error) {
	label, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q: expected a string label, got %T", ErrDomain, p.name, value)
	}

	i, ok := p.index[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q: unknown category %q", ErrDomain, p.name, label)
	}

	return p.oneHot(i), nil
}

// ToParam implements Parameter. It returns the label at the argmax of x.
func (p *CategoricalParameter) ToParam(x []float64) (any, error) {
	if err := checkWidth(p, x); err != nil {
		return nil, err
	}

	return p.categories[argmax(x)], nil
}

// Transform implements Parameter.
func (p *CategoricalParameter) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(p, x); err != nil {
		return nil, err
	}

	return p.oneHot(argmax(x)), nil
}

// Sample implements Parameter.
func (p *CategoricalParameter) Sample(rng *rand.Rand) []float64 {
	return p.oneHot(rng.Intn(len(p.categories)))
}

func (p *CategoricalParameter) oneHot(i int) []float64 {
	x := make([]float64, len(p.categories))
	x[i] = 1

	return x
}

//////
// Factory.
//////

// NewParameter validates b and builds the matching Parameter.
// Errors wrap ErrConfiguration.
func NewParameter(b Bound) (Parameter, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	switch b.Kind {
	case KindFloat:
		return &FloatParameter{name: b.Name, low: b.Low, high: b.High}, nil
	case KindInt:
		if b.Low < math.MinInt || b.High >= math.MaxInt {
			return nil, fmt.Errorf("%w: %q: int bounds [%v, %v] overflow int", ErrConfiguration, b.Name, b.Low, b.High)
		}

		return &IntParameter{name: b.Name, low: int(b.Low), high: int(b.High)}, nil
	default:
		p := &CategoricalParameter{
			name:       b.Name,
			categories: make([]string, len(b.Categories)),
			index:      make(map[string]int, len(b.Categories)),
		}

		copy(p.categories, b.Categories)

		for i, label := range p.categories {
			p.index[label] = i
		}

		return p, nil
	}
}

//////
// Helper functions.
//////

// inRange converts value to float64 and checks low <= v <= high.
func inRange(name string, value any, low, high float64) (float64, error) {
	v, ok := toFloat64(value)
	if !ok {
		return 0, fmt.Errorf("%w: %q: expected a number, got %T", ErrDomain, name, value)
	}

	if math.IsNaN(v) || v < low || v > high {
		return 0, fmt.Errorf("%w: %q: %v is outside [%v, %v]", ErrDomain, name, v, low, high)
	}

	return v, nil
}

func checkWidth(p Parameter, x []float64) error {
	if len(x) != p.Width() {
		return fmt.Errorf("%w: %q: got %d values, want %d", ErrDimension, p.Name(), len(x), p.Width())
	}

	return nil
}
