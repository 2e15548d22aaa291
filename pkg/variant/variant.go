package variant

import (
	"github.com/aretw0/pictograph/pkg/domain"
)

// Bindings maps each declared input key to the value of its producer's cache.
type Bindings map[string]any

// Params maps each declared parameter name to its current value.
type Params map[string]any

// Spec declares the shape of a variant.
type Spec struct {
	// Name is the registry key and the type recorded in descriptors.
	Name        string
	DisplayName string
	Description string

	// Inputs are the declared input terminal keys.
	Inputs []string

	// Parameters are templates; the runtime clones them for every node.
	Parameters []*domain.Parameter

	HasOutput bool

	// Source marks self-sufficient variants that are computed at construction
	// and start in the Valid state.
	Source bool
}

// Variant is the compute capability of a node.
// Compute must be pure with respect to its arguments, except for a sink's
// designated visible effect.
type Variant interface {
	Spec() Spec
	Compute(in Bindings, params Params) (any, error)
}

// Invalidator is implemented by variants that perform a visible effect when
// their value becomes stale.
type Invalidator interface {
	OnInvalidate()
}

// Base carries the Spec of a variant. It deliberately has no Compute method,
// so it cannot be used as a Variant on its own.
type Base struct {
	spec Spec
}

// NewBase creates a Base from spec.
func NewBase(spec Spec) Base {
	return Base{spec: spec}
}

// Spec returns the declared shape. Parameter templates are cloned so callers
// cannot alter the variant's defaults.
func (b Base) Spec() Spec {
	s := b.spec
	s.Inputs = append([]string(nil), b.spec.Inputs...)
	s.Parameters = make([]*domain.Parameter, len(b.spec.Parameters))
	for i, p := range b.spec.Parameters {
		s.Parameters[i] = p.Clone()
	}
	return s
}
