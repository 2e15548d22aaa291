package dsl

import (
	"fmt"
	"maps"

	"github.com/aretw0/pictograph/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	name    string
	variant string
	params  map[string]any

	inputs map[string]string
	keys   []string
	errs   []error
}

// Param sets the initial value of a parameter.
// Values are checked against the variant's schema when the document is loaded.
func (n *NodeBuilder) Param(name string, value any) *NodeBuilder {
	if n.params == nil {
		n.params = make(map[string]any)
	}
	n.params[name] = value
	return n
}

// Input feeds the terminal key from the node named producer.
func (n *NodeBuilder) Input(key, producer string) *NodeBuilder {
	if prev, ok := n.inputs[key]; ok {
		n.errs = append(n.errs, fmt.Errorf("node %q input %q already fed by %q", n.name, key, prev))
		return n
	}
	n.inputs[key] = producer
	n.keys = append(n.keys, key)
	return n
}

// Name returns the name the node was added under.
func (n *NodeBuilder) Name() string { return n.name }

// Build returns the node's descriptor.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.NodeDescriptor {
	return domain.NodeDescriptor{
		Type:       n.variant,
		Parameters: maps.Clone(n.params),
	}
}
