package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/variant"
)

// Process recomputes the node when every declared input is connected to a
// valid producer, then notifies its consumers.
// An unready node is left untouched; callers check IsOutputValid afterwards.
func (g *Graph) Process(id domain.NodeID) error {
	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	return g.process(n)
}

// AdjustParameter stores a new parameter value and then processes the node.
// Processing is forced, not gated on a readiness change: source nodes without
// inputs recompute immediately, others still pass through the readiness check.
func (g *Graph) AdjustParameter(id domain.NodeID, name string, value any) error {
	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	p, ok := n.params[name]
	if !ok {
		return fmt.Errorf("%w: %s (%s) has no parameter %q", domain.ErrUnknownParameter, id, n.spec.Name, name)
	}
	p.Value = value
	g.logger.Debug("parameter adjusted", "node_id", id, "parameter", name)
	return g.process(n)
}

// SetAutoProcess toggles whether a successful ConnectInput processes the node.
func (g *Graph) SetAutoProcess(id domain.NodeID, enabled bool) error {
	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	n.autoProcess = enabled
	return nil
}

func (g *Graph) ready(n *node) bool {
	for _, key := range n.keys {
		pid := n.inputs[key]
		if pid == 0 {
			return false
		}
		p, ok := g.nodes[pid]
		if !ok || !p.valid {
			return false
		}
	}
	return true
}

func (g *Graph) process(n *node) error {
	if !g.ready(n) {
		g.logger.Debug("process skipped: inputs not ready", "node_id", n.id, "variant", n.spec.Name)
		return nil
	}

	in := make(variant.Bindings, len(n.keys))
	for _, key := range n.keys {
		v := g.nodes[n.inputs[key]].cache
		n.bound[key] = v
		in[key] = v
	}

	out, err := n.variant.Compute(in, n.paramValues())
	if err != nil {
		if n.valid {
			g.invalidate(n)
		}
		g.logger.Warn("compute failed", "node_id", n.id, "variant", n.spec.Name, "error", err)
		return fmt.Errorf("%w: %s (%s): %w", domain.ErrCompute, n.id, n.spec.Name, err)
	}

	n.cache = out
	n.valid = true
	g.logger.Debug("node processed", "node_id", n.id, "variant", n.spec.Name, "depth", g.depth)
	if g.hooks.OnProcess != nil {
		g.hooks.OnProcess(g.nodeEvent(domain.EventNodeProcessed, n))
	}

	return g.broadcast(n, domain.MessageBecameValid)
}

// Refresh processes every node that declares no inputs, in creation order.
// The resulting BecameValid cascade recomputes every reachable consumer, so a
// freshly restored graph with auto-process disabled ends up fully evaluated.
func (g *Graph) Refresh() error {
	var errs []error
	for _, id := range g.IDs() {
		n := g.nodes[id]
		if len(n.keys) > 0 {
			continue
		}
		if err := g.process(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
