package pictograph

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/pictograph/internal/runtime"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/aretw0/pictograph/pkg/variant"
)

// ErrNoStore is returned by Save and Open when the engine has no DocumentStore.
var ErrNoStore = errors.New("no document store configured")

// Engine is the high-level entry point for the pictograph library.
// It wraps the internal runtime graph and serializes access to it, so a single
// Engine can be shared by concurrent adapters.
//
// Lifecycle hooks run while the engine lock is held and must not call back
// into the Engine.
type Engine struct {
	mu       sync.Mutex
	graph    *runtime.Graph
	registry *registry.Registry
	store    ports.DocumentStore

	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	autoProcess bool
	printerOut  io.Writer
	Name        string
}

var _ ports.Editor = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the built-in variant registry.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithAutoProcess makes new nodes process as soon as an input is connected (default: false).
func WithAutoProcess(enabled bool) Option {
	return func(e *Engine) {
		e.autoProcess = enabled
	}
}

// WithPrinterOutput sets where built-in printer nodes write (default: stdout).
// It is ignored when WithRegistry is used.
func WithPrinterOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.printerOut = w
	}
}

// WithStore attaches a DocumentStore used by Save and Open.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithName labels the engine; the name is added to every log line.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an empty engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}
	if eng.registry == nil {
		eng.registry = registry.Default(eng.printerOut)
	}

	eng.graph = eng.newGraph()
	return eng
}

func (e *Engine) newGraph() *runtime.Graph {
	return runtime.NewGraph(
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithAutoProcess(e.autoProcess),
	)
}

// Registry returns the variant registry used by AddNode.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Catalog lists the variants that AddNode accepts.
func (e *Engine) Catalog() []registry.Entry {
	return e.registry.Catalog()
}

// AddNode instantiates the variant registered under typeName.
func (e *Engine) AddNode(typeName string) (domain.NodeID, error) {
	v, err := e.registry.New(typeName)
	if err != nil {
		return 0, err
	}
	return e.AddVariant(v)
}

// AddVariant places an already constructed variant in the graph.
func (e *Engine) AddVariant(v variant.Variant) (domain.NodeID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.AddNode(v)
}

// RemoveNode deletes a node that has no remaining links.
func (e *Engine) RemoveNode(id domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.RemoveNode(id)
}

// ConnectInput links producer into consumer's key terminal.
func (e *Engine) ConnectInput(consumer domain.NodeID, key string, producer domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.ConnectInput(consumer, key, producer)
}

// DisconnectInput clears consumer's key terminal and invalidates consumer.
func (e *Engine) DisconnectInput(consumer domain.NodeID, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.DisconnectInput(consumer, key)
}

// ConnectOutput registers consumer as a listener of producer without binding a terminal.
func (e *Engine) ConnectOutput(producer, consumer domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.ConnectOutput(producer, consumer)
}

// DisconnectOutput removes consumer from producer's listeners.
func (e *Engine) DisconnectOutput(producer, consumer domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.DisconnectOutput(producer, consumer)
}

// AdjustParameter sets a parameter value and recomputes the node when ready.
func (e *Engine) AdjustParameter(id domain.NodeID, name string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.AdjustParameter(id, name, value)
}

// Parameter returns a copy of a node's parameter.
func (e *Engine) Parameter(id domain.NodeID, name string) (domain.Parameter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Parameter(id, name)
}

// SetAutoProcess toggles processing on connect for a single node.
func (e *Engine) SetAutoProcess(id domain.NodeID, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.SetAutoProcess(id, enabled)
}

// Process recomputes the node if all its inputs are ready.
func (e *Engine) Process(id domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Process(id)
}

// Invalidate marks the node and everything downstream as stale.
func (e *Engine) Invalidate(id domain.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Invalidate(id)
}

// Refresh processes every input-less node, evaluating the whole graph.
func (e *Engine) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Refresh()
}

// IsOutputValid reports whether the node's output is current.
func (e *Engine) IsOutputValid(id domain.NodeID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.IsOutputValid(id)
}

// Output returns the node's cached value; ok is false while it is invalid.
func (e *Engine) Output(id domain.NodeID) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Output(id)
}

// Descriptor returns what a loader needs to recreate the node.
func (e *Engine) Descriptor(id domain.NodeID) (domain.NodeDescriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Descriptor(id)
}

// Inspect returns a snapshot of a single node.
func (e *Engine) Inspect(id domain.NodeID) (domain.NodeInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Info(id)
}

// Nodes returns a snapshot of every node in creation order.
func (e *Engine) Nodes() []domain.NodeInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Nodes()
}

// Len returns the number of nodes.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Len()
}

// Snapshot encodes the current graph as a document.
func (e *Engine) Snapshot() *domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return document.Encode(e.graph)
}

// Reset discards every node.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph = e.newGraph()
	e.logger.Debug("graph reset")
}
