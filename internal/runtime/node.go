package runtime

import (
	"slices"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/variant"
)

// node is the arena-owned state of one evaluation unit.
type node struct {
	id      domain.NodeID
	variant variant.Variant
	spec    variant.Spec

	// keys holds the declared inputs in declaration order.
	keys []string
	// inputs maps every declared key to its producer; 0 means unconnected.
	inputs map[string]domain.NodeID
	// outputs lists consumers in connection order, without duplicates.
	outputs []domain.NodeID

	params     map[string]*domain.Parameter
	paramOrder []string

	// bound holds the input values last read from producers.
	bound map[string]any

	cache       any
	valid       bool
	autoProcess bool
}

func newNode(id domain.NodeID, v variant.Variant, autoProcess bool) *node {
	spec := v.Spec()
	n := &node{
		id:          id,
		variant:     v,
		spec:        spec,
		keys:        spec.Inputs,
		inputs:      make(map[string]domain.NodeID, len(spec.Inputs)),
		params:      make(map[string]*domain.Parameter, len(spec.Parameters)),
		bound:       make(map[string]any, len(spec.Inputs)),
		autoProcess: autoProcess,
	}
	for _, key := range spec.Inputs {
		n.inputs[key] = 0
	}
	for _, p := range spec.Parameters {
		n.params[p.Name] = p.Clone()
		n.paramOrder = append(n.paramOrder, p.Name)
	}
	return n
}

func (n *node) declares(key string) bool {
	_, ok := n.inputs[key]
	return ok
}

// feeds reports whether producer is linked to any input of n.
func (n *node) feeds(producer domain.NodeID) bool {
	for _, key := range n.keys {
		if n.inputs[key] == producer {
			return true
		}
	}
	return false
}

func (n *node) addOutput(consumer domain.NodeID) {
	if !slices.Contains(n.outputs, consumer) {
		n.outputs = append(n.outputs, consumer)
	}
}

func (n *node) removeOutput(consumer domain.NodeID) {
	n.outputs = slices.DeleteFunc(n.outputs, func(id domain.NodeID) bool { return id == consumer })
}

// unbind drops only the bindings sourced from sender.
func (n *node) unbind(sender domain.NodeID) {
	for _, key := range n.keys {
		if n.inputs[key] == sender {
			delete(n.bound, key)
		}
	}
}

func (n *node) paramValues() variant.Params {
	values := make(variant.Params, len(n.params))
	for name, p := range n.params {
		values[name] = p.Value
	}
	return values
}

func (n *node) descriptor() domain.NodeDescriptor {
	return domain.NodeDescriptor{
		Type:       n.spec.Name,
		Parameters: n.paramValues(),
	}
}

func (n *node) info() domain.NodeInfo {
	info := domain.NodeInfo{
		ID:          n.id,
		Type:        n.spec.Name,
		DisplayName: n.spec.DisplayName,
		Description: n.spec.Description,
		HasOutput:   n.spec.HasOutput,
		AutoProcess: n.autoProcess,
		Valid:       n.valid,
		Inputs:      make(map[string]*domain.NodeID, len(n.keys)),
		Outputs:     append([]domain.NodeID{}, n.outputs...),
	}
	if n.valid {
		info.Output = n.cache
	}
	for _, key := range n.keys {
		if pid := n.inputs[key]; pid != 0 {
			info.Inputs[key] = &pid
		} else {
			info.Inputs[key] = nil
		}
	}
	for _, name := range n.paramOrder {
		info.Parameters = append(info.Parameters, *n.params[name].Clone())
	}
	return info
}
