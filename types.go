package targetspace

import (
	"errors"
	"time"
)

//////
// Errors.
//////

var (
	// ErrConfiguration is returned when a bound specification is malformed:
	// inverted bounds, duplicate names or labels, wrong entry shape.
	ErrConfiguration = errors.New("invalid parameter configuration")

	// ErrDomain is returned when a value falls outside its parameter's domain:
	// a number out of bounds or a label that isn't a known category.
	ErrDomain = errors.New("value outside parameter domain")

	// ErrLookup is returned when a point is missing one of the space's keys.
	ErrLookup = errors.New("missing parameter")

	// ErrDimension is returned when an encoded vector doesn't have the width
	// the space (or descriptor) expects.
	ErrDimension = errors.New("dimension mismatch")
)

//////
// Const, vars, types.
//////

// Kind tags which variant of parameter a Bound describes.
type Kind int

const (
	// KindFloat is a continuous parameter in [Low, High].
	KindFloat Kind = iota

	// KindInt is an integer parameter in [Low, High].
	KindInt

	// KindCategorical is a parameter taking one of Categories.
	KindCategorical
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Point maps parameter names to native values: a number for float and int
// parameters, a string label for categorical ones.
type Point map[string]any

// TargetFunc defines the signature of the objective being optimized.
//
// Parameters:
//   - params: One entry per key of the space, holding the native value the
//     caller probed with.
//
// Returns:
// - float64: The observed outcome
// - error: Any failure; it is returned unchanged by Probe and nothing is recorded
//
// Usage example:
//
//	target := TargetFunc(func(params Point) (float64, error) {
//	    lr := params["learning_rate"].(float64)
//	    layers := params["layers"].(int)
//	    return trainAndScore(lr, layers)
//	})
type TargetFunc func(params Point) (float64, error)

// Observation is one recorded probe, decoded back into native values.
type Observation struct {
	// Params holds the decoded native values of the probed point.
	Params Point

	// Target is the observed outcome.
	Target float64
}

// ProbeEvent describes a row that was just committed to a TargetSpace.
type ProbeEvent struct {
	// ID uniquely identifies this observation.
	ID string

	// Index is the row index of the observation in Params/Target.
	Index int

	// Params holds the native values the objective was called with
	Params Point

	// Encoded is the encoded row that was appended
	Encoded []float64

	// Target is the recorded outcome
	Target float64

	// Duration is how long the objective took. Zero for registered points.
	Duration time.Duration

	// Registered is true when the row came from Register rather than Probe.
	Registered bool
}

// Config holds the optional settings of a TargetSpace.
//
// Usage example:
//
//	events := make(chan ProbeEvent, 64)
//
//	config := DefaultConfig()
//	config.ProbeChan = events
//
//	space, err := NewTargetSpace(target, bounds, WithConfig(config))
type Config struct {
	// ProbeChan is used to send an event for every committed observation.
	// If nil, no events will be sent. Sends never block: when the channel is
	// full the event is dropped.
	ProbeChan chan<- ProbeEvent
}

// Option configures a TargetSpace.
type Option func(*Config)
