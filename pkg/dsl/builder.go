package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/pictograph/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder; a differing
// variant is reported by Build.
func (b *Builder) Add(name, variant string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		if nb.variant != variant {
			nb.errs = append(nb.errs, fmt.Errorf("node %q redeclared as %s (was %s)", name, variant, nb.variant))
		}
		return nb
	}
	nb := &NodeBuilder{
		name:    name,
		variant: variant,
		inputs:  make(map[string]string),
	}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

// Node returns the builder registered under name.
func (b *Builder) Node(name string) (*NodeBuilder, bool) {
	nb, ok := b.nodes[name]
	return nb, ok
}

// Build compiles the graph into a document. Nodes keep the order in which
// they were added; connections are listed per consumer in input order.
func (b *Builder) Build() (*domain.Document, error) {
	doc := domain.NewDocument()
	index := make(map[string]int, len(b.order))
	for i, name := range b.order {
		index[name] = i
	}

	var errs []error
	for _, name := range b.order {
		nb := b.nodes[name]
		errs = append(errs, nb.errs...)
		if nb.variant == "" {
			errs = append(errs, fmt.Errorf("node %q has no variant", name))
		}
		doc.Nodes = append(doc.Nodes, nb.Build())

		for _, key := range nb.keys {
			from, ok := index[nb.inputs[key]]
			if !ok {
				errs = append(errs, fmt.Errorf("node %q input %q: unknown producer %q", name, key, nb.inputs[key]))
				continue
			}
			doc.Connections = append(doc.Connections, domain.Connection{
				From: from,
				To:   index[name],
				Key:  key,
			})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	return doc, nil
}
