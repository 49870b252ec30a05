// Package targetspace provides the parameter representation layer of a
// black-box (Bayesian) optimizer: it maps named float, integer and categorical
// parameters onto one fixed-width feature vector for a surrogate model, and it
// records every probed point together with its observed outcome.
//
// # Features
//
//   - Typed Bounds: float, int and categorical parameters described by an
//     explicit tagged union, validated once when the space is built
//   - Stable Layout: keys keep their declaration order, and every encode,
//     decode and bounds row follows it
//   - One-hot Categoricals: a categorical parameter with c labels takes c
//     columns, each bounded by [0, 1]
//   - Feasible Decoding: relaxed vectors decode to feasible points, with ints
//     rounded and clipped and categoricals taken at the argmax
//   - Atomic Probing: encode, evaluate, append; a failed probe records nothing
//   - Bounds Documents: YAML or JSON bounds, parsed in document order
//   - Probe Events: optional, non-blocking notifications on a channel
//
// # Parameter Kinds
//
// 1. Float, encoded as the value itself:
//
//	FloatBound("learning_rate", 0.0001, 0.1)
//
// 2. Int, encoded as a real number, decoded back to the nearest integer within
// bounds:
//
//	IntBound("layers", 1, 8)
//
// 3. Categorical, one-hot encoded in label order:
//
//	CategoricalBound("optimizer", "sgd", "adam", "rmsprop")
//
// # Probing
//
//	ts, err := NewTargetSpace(
//	    func(params Point) (float64, error) {
//	        return train(params["learning_rate"].(float64), params["layers"].(int))
//	    },
//	    []Bound{
//	        FloatBound("learning_rate", 0.0001, 0.1),
//	        IntBound("layers", 1, 8),
//	    },
//	)
//	if err != nil {
//	    return err
//	}
//
//	score, err := ts.Probe(Point{"learning_rate": 0.01, "layers": 3})
//
//	X := ts.Params()  // n x dim encoded points
//	y := ts.Target()  // n outcomes
//	B := ts.Bounds()  // dim x 2 bounds
//
// # Loading Bounds
//
//	bounds, err := ParseBounds([]byte(`
//	learning_rate: [0.0001, 0.1]
//	layers: [1, 8, int]
//	optimizer: [sgd, adam, rmsprop]
//	`))
//
// # Errors
//
// Errors wrap one of ErrConfiguration, ErrDomain, ErrLookup or ErrDimension,
// check them with errors.Is. Errors returned by the objective are passed
// through unchanged.
//
// # Thread Safety
//
//   - Space is read-only after construction
//   - TargetSpace guards its history with a RWMutex and hands out copies
//   - Concurrent Probe calls need a target function that is itself safe for
//     concurrent use
package targetspace
