package targetspace

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

// Bound is the specification of one named parameter. Exactly one variant is
// meaningful, selected by Kind: Low/High for KindFloat and KindInt, Categories
// for KindCategorical.
//
// Prefer the FloatBound, IntBound and CategoricalBound constructors, or
// ParseBounds for bounds loaded from a document.
//
// Validation:
// - Name must not be empty
// - Low must be less than or equal to High, and both finite
// - KindInt bounds must be integral
// - Categories must hold at least two distinct labels
type Bound struct {
	// Name is the parameter name, used as the key of every Point.
	Name string

	// Kind selects the parameter variant.
	Kind Kind

	// Low is the minimum allowed value (inclusive).
	Low float64

	// High is the maximum allowed value (inclusive).
	High float64

	// Categories lists the labels of a categorical parameter, in encoding order.
	Categories []string
}

//////
// Factory.
//////

// FloatBound specifies a continuous parameter in [low, high].
//
// Usage example:
//
//	lr := FloatBound("learning_rate", 0.0001, 0.1)
func FloatBound[T constraints.Integer | constraints.Float](name string, low, high T) Bound {
	return Bound{Name: name, Kind: KindFloat, Low: float64(low), High: float64(high)}
}

// IntBound specifies an integer parameter in [low, high].
//
// Usage example:
//
//	workers := IntBound("workers", 1, 32)
func IntBound[T constraints.Integer](name string, low, high T) Bound {
	return Bound{Name: name, Kind: KindInt, Low: float64(low), High: float64(high)}
}

// CategoricalBound specifies a parameter taking one of categories. The order
// of categories fixes the one-hot layout.
//
// Usage example:
//
//	fruit := CategoricalBound("fruit", "apple", "banana", "mango")
func CategoricalBound(name string, categories ...string) Bound {
	labels := make([]string, len(categories))
	copy(labels, categories)

	return Bound{Name: name, Kind: KindCategorical, Categories: labels}
}

//////
// Methods.
//////

// Validate checks the bound is well formed. Errors wrap ErrConfiguration.
func (b Bound) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: parameter name is empty", ErrConfiguration)
	}

	switch b.Kind {
	case KindFloat, KindInt:
		if !isFinite(b.Low) || !isFinite(b.High) {
			return fmt.Errorf("%w: %q: bounds [%v, %v] must be finite", ErrConfiguration, b.Name, b.Low, b.High)
		}

		if b.Low > b.High {
			return fmt.Errorf("%w: %q: lower bound %v is greater than upper bound %v", ErrConfiguration, b.Name, b.Low, b.High)
		}

		if b.Kind == KindInt && (b.Low != math.Trunc(b.Low) || b.High != math.Trunc(b.High)) {
			return fmt.Errorf("%w: %q: int bounds [%v, %v] must be integers", ErrConfiguration, b.Name, b.Low, b.High)
		}
	case KindCategorical:
		if len(b.Categories) < 2 {
			return fmt.Errorf("%w: %q: need at least 2 categories, got %d", ErrConfiguration, b.Name, len(b.Categories))
		}

		seen := make(map[string]struct{}, len(b.Categories))
		for _, label := range b.Categories {
			if _, ok := seen[label]; ok {
				return fmt.Errorf("%w: %q: duplicate category %q", ErrConfiguration, b.Name, label)
			}

			seen[label] = struct{}{}
		}
	default:
		return fmt.Errorf("%w: %q: unknown parameter kind %d", ErrConfiguration, b.Name, int(b.Kind))
	}

	return nil
}

//////
// Parsing.
//////

// ParseBounds parses a YAML (or JSON) mapping of parameter name to bound entry.
// The document order of the mapping becomes the order of the returned bounds,
// and so the key order of any space built from them.
//
// Accepted entry shapes:
//
//	lr:      [0.0001, 0.1]                 # float
//	layers:  [1, 8, int]                   # int
//	scale:   [0, 1, float]                 # float, explicit marker
//	fruit:   [apple, banana, mango]        # categorical
//	seed:    {type: int, low: 0, high: 9}  # explicit forms
//	version: {type: categorical, categories: ["1", "2"]}
//
// Anything else is rejected with an error wrapping ErrConfiguration.
func ParseBounds(data []byte) ([]Bound, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: expected a single document", ErrConfiguration)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of parameter name to bounds", ErrConfiguration)
	}

	bounds := make([]Bound, 0, len(root.Content)/2)
	seen := make(map[string]struct{}, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrConfiguration, name)
		}

		seen[name] = struct{}{}

		b, err := parseEntry(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}

		if err := b.Validate(); err != nil {
			return nil, err
		}

		bounds = append(bounds, b)
	}

	return bounds, nil
}

// parseEntry turns one node into a Bound, deciding its kind from the shape.
func parseEntry(name string, node *yaml.Node) (Bound, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		return parseSequence(name, node.Content)
	case yaml.MappingNode:
		return parseMapping(name, node)
	default:
		return Bound{}, fmt.Errorf("%w: %q: expected a sequence or mapping, line %d", ErrConfiguration, name, node.Line)
	}
}

func parseSequence(name string, items []*yaml.Node) (Bound, error) {
	if len(items) == 0 {
		return Bound{}, fmt.Errorf("%w: %q: empty bounds", ErrConfiguration, name)
	}

	numeric := 0
	for _, item := range items {
		if isNumber(item) {
			numeric++
		}
	}

	switch {
	case numeric == 2 && len(items) == 2:
		return numericBound(name, KindFloat, items[0], items[1])
	case numeric == 2 && len(items) == 3 && isNumber(items[0]) && isNumber(items[1]):
		kind, err := kindMarker(name, items[2])
		if err != nil {
			return Bound{}, err
		}

		if kind == KindCategorical {
			return Bound{}, fmt.Errorf("%w: %q: marker %q needs a label list", ErrConfiguration, name, items[2].Value)
		}

		return numericBound(name, kind, items[0], items[1])
	case numeric == 0:
		labels, err := labelList(name, items)
		if err != nil {
			return Bound{}, err
		}

		return CategoricalBound(name, labels...), nil
	default:
		return Bound{}, fmt.Errorf(
			"%w: %q: ambiguous bounds at line %d, use [low, high], [low, high, int] or a list of labels",
			ErrConfiguration, name, items[0].Line,
		)
	}
}

func parseMapping(name string, node *yaml.Node) (Bound, error) {
	var entry struct {
		Type       string     `yaml:"type"`
		Low        *yaml.Node `yaml:"low"`
		High       *yaml.Node `yaml:"high"`
		Categories []string   `yaml:"categories"`
	}

	if err := node.Decode(&entry); err != nil {
		return Bound{}, fmt.Errorf("%w: %q: %v", ErrConfiguration, name, err)
	}

	kind, err := kindMarker(name, &yaml.Node{Kind: yaml.ScalarNode, Value: entry.Type})
	if err != nil {
		return Bound{}, err
	}

	if kind == KindCategorical {
		if entry.Low != nil || entry.High != nil {
			return Bound{}, fmt.Errorf("%w: %q: categorical entries take no low/high", ErrConfiguration, name)
		}

		return CategoricalBound(name, entry.Categories...), nil
	}

	if entry.Low == nil || entry.High == nil || len(entry.Categories) > 0 {
		return Bound{}, fmt.Errorf("%w: %q: %s entries need low and high only", ErrConfiguration, name, kind)
	}

	return numericBound(name, kind, entry.Low, entry.High)
}

func numericBound(name string, kind Kind, lowNode, highNode *yaml.Node) (Bound, error) {
	var low, high float64

	if !isNumber(lowNode) || lowNode.Decode(&low) != nil {
		return Bound{}, fmt.Errorf("%w: %q: low %q is not a number", ErrConfiguration, name, lowNode.Value)
	}

	if !isNumber(highNode) || highNode.Decode(&high) != nil {
		return Bound{}, fmt.Errorf("%w: %q: high %q is not a number", ErrConfiguration, name, highNode.Value)
	}

	return Bound{Name: name, Kind: kind, Low: low, High: high}, nil
}

func kindMarker(name string, node *yaml.Node) (Kind, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%w: %q: type marker must be a scalar", ErrConfiguration, name)
	}

	switch node.Value {
	case "float":
		return KindFloat, nil
	case "int":
		return KindInt, nil
	case "categorical":
		return KindCategorical, nil
	default:
		return 0, fmt.Errorf("%w: %q: unknown type marker %q", ErrConfiguration, name, node.Value)
	}
}

func labelList(name string, items []*yaml.Node) ([]string, error) {
	labels := make([]string, len(items))

	for i, item := range items {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %q: category %d is not a scalar", ErrConfiguration, name, i)
		}

		labels[i] = item.Value
	}

	return labels, nil
}

// isNumber reports whether node is a plain (unquoted) int or float scalar.
func isNumber(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode {
		return false
	}

	tag := node.ShortTag()

	return tag == "!!int" || tag == "!!float"
}
