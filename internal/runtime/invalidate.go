package runtime

import (
	"errors"
	"slices"
	"time"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/variant"
)

// Invalidate clears the node's cache and marks every dependent stale.
func (g *Graph) Invalidate(id domain.NodeID) error {
	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	g.invalidate(n)
	return nil
}

func (g *Graph) invalidate(n *node) {
	n.cache = nil
	n.valid = false
	g.logger.Debug("node invalidated", "node_id", n.id, "variant", n.spec.Name, "depth", g.depth)
	if g.hooks.OnInvalidate != nil {
		g.hooks.OnInvalidate(g.nodeEvent(domain.EventNodeInvalidated, n))
	}

	// BecameInvalid handling cannot fail.
	_ = g.broadcast(n, domain.MessageBecameInvalid)

	if inv, ok := n.variant.(variant.Invalidator); ok {
		inv.OnInvalidate()
	}
}

// broadcast delivers msg to every consumer of n, depth first, in connection order.
// A failing consumer does not stop delivery to the others.
func (g *Graph) broadcast(n *node, msg domain.Message) error {
	if len(n.outputs) == 0 {
		return nil
	}

	g.depth++
	defer func() { g.depth-- }()

	var errs []error
	for _, cid := range slices.Clone(n.outputs) {
		c, ok := g.nodes[cid]
		if !ok {
			continue
		}
		if err := g.receive(c, msg, n.id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Graph) receive(n *node, msg domain.Message, sender domain.NodeID) error {
	switch msg {
	case domain.MessageBecameValid:
		return g.process(n)
	case domain.MessageBecameInvalid:
		g.invalidate(n)
		n.unbind(sender)
	}
	return nil
}

func (g *Graph) nodeEvent(t domain.EventType, n *node) *domain.NodeEvent {
	return &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		NodeID:    n.id,
		NodeType:  n.spec.Name,
		Depth:     g.depth,
	}
}
