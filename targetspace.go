package targetspace

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

//////
// Exported functionalities.
//////

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ProbeChan: nil, // Default to no probe events.
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(c *Config) {
		*c = config
	}
}

// WithProbeChan sets the channel probe events are sent on.
func WithProbeChan(ch chan<- ProbeEvent) Option {
	return func(c *Config) {
		c.ProbeChan = ch
	}
}

// TargetSpace couples a Space with an objective and the history of probed
// points and their outcomes.
//
// Row i of Params is the encoding of the i-th recorded point and Target()[i]
// is its outcome. The history only grows: repeated points are appended again,
// nothing is deduplicated or removed.
//
// Thread safety:
//   - The history is guarded by a RWMutex; concurrent Probe calls each commit
//     one complete row, in the order their objectives return
//   - The objective runs outside the lock and must itself be safe for
//     concurrent use if Probe is called concurrently
type TargetSpace struct {
	space   *Space
	target  TargetFunc
	config  Config
	history *history
}

// NewTargetSpace creates a TargetSpace for target over bounds.
//
// Parameters:
// - target: The objective; called with one entry per bound
// - bounds: The parameters, in key order
// - opts: Optional settings, see DefaultConfig
//
// Returns:
// - *TargetSpace: An empty target space
// - error: Wrapping ErrConfiguration if target is nil or bounds are malformed
//
// Usage example:
//
//	ts, err := NewTargetSpace(
//	    func(params Point) (float64, error) {
//	        return params["p1"].(float64) + params["p2"].(float64), nil
//	    },
//	    []Bound{
//	        FloatBound("p1", 0, 1),
//	        FloatBound("p2", 1, 2),
//	    },
//	)
//	if err != nil {
//	    return err
//	}
//
//	value, err := ts.Probe(Point{"p1": 0.2, "p2": 1.5}) // 1.7
func NewTargetSpace(target TargetFunc, bounds []Bound, opts ...Option) (*TargetSpace, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: target function is required", ErrConfiguration)
	}

	space, err := NewSpace(bounds...)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &TargetSpace{
		space:   space,
		target:  target,
		config:  config,
		history: newHistory(space.Dim()),
	}, nil
}

// Probe evaluates the objective at point and records the result.
//
// How it works:
//  1. Encodes point and snaps it to the nearest feasible encoding (int values
//     rounded and clipped); on failure nothing is recorded
//  2. Calls the objective with the decoded point: one entry per key, float
//     parameters as float64, int parameters as int, categoricals as string.
//     On failure its error is returned unchanged and nothing is recorded
//  3. Rejects a NaN or infinite outcome with ErrDomain, recording nothing
//  4. Appends the encoded point and the outcome as the new last row
//  5. Returns the outcome
//
// Returns:
// - float64: The objective value at point
// - error: Wrapping ErrLookup or ErrDomain for a bad point or outcome, or the objective's own error
func (ts *TargetSpace) Probe(point Point) (float64, error) {
	x, params, err := ts.prepare(point)
	if err != nil {
		return 0, err
	}

	value, duration, err := measureTarget(ts.target, clonePoint(params))
	if err != nil {
		return 0, err
	}

	if err := checkTarget(value); err != nil {
		return 0, err
	}

	ts.commit(params, x, value, duration, false)

	return value, nil
}

// Register records an outcome observed elsewhere, without calling the
// objective. Point and target are checked exactly as in Probe.
func (ts *TargetSpace) Register(point Point, target float64) error {
	x, params, err := ts.prepare(point)
	if err != nil {
		return err
	}

	if err := checkTarget(target); err != nil {
		return err
	}

	ts.commit(params, x, target, 0, true)

	return nil
}

// Space returns the underlying parameter space.
func (ts *TargetSpace) Space() *Space {
	return ts.space
}

// Keys returns the parameter names in layout order.
func (ts *TargetSpace) Keys() []string {
	return ts.space.Keys()
}

// Dim returns the length of an encoded point.
func (ts *TargetSpace) Dim() int {
	return ts.space.Dim()
}

// Bounds returns a copy of the dim x 2 bounds matrix.
func (ts *TargetSpace) Bounds() *mat.Dense {
	return ts.space.Bounds()
}

// Len returns the number of recorded observations.
func (ts *TargetSpace) Len() int {
	return ts.history.Len()
}

// Empty reports whether nothing has been recorded yet.
func (ts *TargetSpace) Empty() bool {
	return ts.history.Len() == 0
}

// Params returns a copy of the n x dim matrix of encoded points. When empty, it
// returns a zero-value Dense (see mat.Dense.IsEmpty).
func (ts *TargetSpace) Params() *mat.Dense {
	return ts.history.Matrix()
}

// Target returns a copy of the n recorded outcomes.
func (ts *TargetSpace) Target() []float64 {
	return ts.history.Targets()
}

// Max returns the observation with the largest target, the earliest one on
// ties. ok is false when nothing has been recorded.
func (ts *TargetSpace) Max() (obs Observation, ok bool) {
	return ts.history.Best()
}

// Res returns every observation in recording order.
func (ts *TargetSpace) Res() []Observation {
	return ts.history.Observations()
}

//////
// Helper functions.
//////

// prepare encodes point, snaps the encoding to the nearest feasible one and
// decodes it back, so the row and the native point always agree.
func (ts *TargetSpace) prepare(point Point) ([]float64, Point, error) {
	x, err := ts.space.Encode(point)
	if err != nil {
		return nil, nil, err
	}

	x, err = ts.space.Transform(x)
	if err != nil {
		return nil, nil, err
	}

	params, err := ts.space.Decode(x)
	if err != nil {
		return nil, nil, err
	}

	return x, params, nil
}

func checkTarget(value float64) error {
	if !isFinite(value) {
		return fmt.Errorf("%w: target %v is not finite", ErrDomain, value)
	}

	return nil
}

func (ts *TargetSpace) commit(params Point, x []float64, value float64, duration time.Duration, registered bool) {
	index := ts.history.Append(x, value, params)

	if ts.config.ProbeChan == nil {
		return
	}

	event := ProbeEvent{
		ID:         uuid.NewString(),
		Index:      index,
		Params:     clonePoint(params),
		Encoded:    cloneFloats(x),
		Target:     value,
		Duration:   duration,
		Registered: registered,
	}

	select {
	case ts.config.ProbeChan <- event:
	default:
		// Skip event if channel is full.
	}
}
