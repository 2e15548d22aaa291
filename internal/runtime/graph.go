package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/variant"
)

// Graph is the arena owning every node of a dataflow graph.
// Links between nodes are stored as NodeIDs; the arena is the only owner.
//
// Graph is not safe for concurrent use. Every operation runs synchronously and
// completes its whole notification cascade before returning.
type Graph struct {
	nodes       map[domain.NodeID]*node
	lastID      domain.NodeID
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	autoProcess bool

	// depth is the current notification cascade depth.
	depth int
}

// Option defines a functional option for configuring the Graph.
type Option func(*Graph)

// WithLogger sets a custom structured logger for the graph.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Graph) {
		g.hooks = hooks
	}
}

// WithAutoProcess sets the auto-process flag given to new nodes (default: false).
func WithAutoProcess(enabled bool) Option {
	return func(g *Graph) {
		g.autoProcess = enabled
	}
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		nodes:  make(map[domain.NodeID]*node),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode places a new node of the given variant in the arena.
// Source variants are computed immediately and start valid.
func (g *Graph) AddNode(v variant.Variant) (domain.NodeID, error) {
	if v == nil {
		return 0, domain.ErrAbstractVariant
	}

	n := newNode(g.lastID+1, v, g.autoProcess)
	if n.spec.Source {
		out, err := v.Compute(variant.Bindings{}, n.paramValues())
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", domain.ErrCompute, n.spec.Name, err)
		}
		n.cache = out
		n.valid = true
	}

	g.lastID = n.id
	g.nodes[n.id] = n
	g.logger.Debug("node added", "node_id", n.id, "variant", n.spec.Name, "valid", n.valid)
	return n.id, nil
}

// RemoveNode deletes a node from the arena. Every input and output link must
// have been disconnected first.
func (g *Graph) RemoveNode(id domain.NodeID) error {
	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	if len(n.outputs) > 0 {
		return fmt.Errorf("%w: %s still feeds %d consumer(s)", domain.ErrNodeInUse, id, len(n.outputs))
	}
	for _, key := range n.keys {
		if n.inputs[key] != 0 {
			return fmt.Errorf("%w: %s input %q is connected", domain.ErrNodeInUse, id, key)
		}
	}
	delete(g.nodes, id)
	g.logger.Debug("node removed", "node_id", id)
	return nil
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDs returns every NodeID in creation order.
func (g *Graph) IDs() []domain.NodeID {
	ids := make([]domain.NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsOutputValid reports whether the node's cache reflects its inputs and parameters.
// Unknown nodes are never valid.
func (g *Graph) IsOutputValid(id domain.NodeID) bool {
	n, ok := g.nodes[id]
	return ok && n.valid
}

// Output returns the cached value. ok is false while the node is invalid.
func (g *Graph) Output(id domain.NodeID) (value any, ok bool) {
	n, exists := g.nodes[id]
	if !exists || !n.valid {
		return nil, false
	}
	return n.cache, true
}

// Bound returns the input value currently bound to key, as last read from its producer.
func (g *Graph) Bound(id domain.NodeID, key string) (any, bool) {
	n, exists := g.nodes[id]
	if !exists {
		return nil, false
	}
	v, ok := n.bound[key]
	return v, ok
}

// Parameter returns a copy of a node's parameter.
func (g *Graph) Parameter(id domain.NodeID, name string) (domain.Parameter, error) {
	n, err := g.lookup(id)
	if err != nil {
		return domain.Parameter{}, err
	}
	p, ok := n.params[name]
	if !ok {
		return domain.Parameter{}, fmt.Errorf("%w: %s has no parameter %q", domain.ErrUnknownParameter, id, name)
	}
	return *p.Clone(), nil
}

// Descriptor returns the data an external loader needs to rebuild the node.
func (g *Graph) Descriptor(id domain.NodeID) (domain.NodeDescriptor, error) {
	n, err := g.lookup(id)
	if err != nil {
		return domain.NodeDescriptor{}, err
	}
	return n.descriptor(), nil
}

// Info returns a read-only snapshot of the node.
func (g *Graph) Info(id domain.NodeID) (domain.NodeInfo, error) {
	n, err := g.lookup(id)
	if err != nil {
		return domain.NodeInfo{}, err
	}
	return n.info(), nil
}

// Nodes returns a snapshot of every node in creation order.
func (g *Graph) Nodes() []domain.NodeInfo {
	ids := g.IDs()
	infos := make([]domain.NodeInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, g.nodes[id].info())
	}
	return infos
}

func (g *Graph) lookup(id domain.NodeID) (*node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return n, nil
}
