package pictograph

import (
	"context"
	"fmt"

	"github.com/aretw0/pictograph/internal/runtime"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/registry"
)

// graphBuilder restores documents into a graph that is not yet shared.
type graphBuilder struct {
	*runtime.Graph
	registry *registry.Registry
}

func (b graphBuilder) AddNode(typeName string) (domain.NodeID, error) {
	v, err := b.registry.New(typeName)
	if err != nil {
		return 0, err
	}
	return b.Graph.AddNode(v)
}

// Load replaces the current graph with doc and evaluates it.
// It returns the new NodeIDs indexed by document position.
//
// If doc cannot be rebuilt the current graph is kept. Compute failures while
// evaluating the restored graph are returned, but the graph is still loaded
// with the failing nodes left invalid.
func (e *Engine) Load(doc *domain.Document) ([]domain.NodeID, error) {
	b := graphBuilder{Graph: e.newGraph(), registry: e.registry}

	// Hooks may fire while restoring; the engine lock is held so they observe
	// the same contract as regular edits.
	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := document.Restore(doc, b)
	if err != nil {
		return nil, fmt.Errorf("restore document: %w", err)
	}
	refreshErr := b.Refresh()

	e.graph = b.Graph
	e.logger.Debug("graph loaded", "nodes", len(ids), "connections", len(doc.Connections))
	if refreshErr != nil {
		return ids, fmt.Errorf("evaluate document: %w", refreshErr)
	}
	return ids, nil
}

// Save stores the current graph under name.
func (e *Engine) Save(ctx context.Context, name string) error {
	if e.store == nil {
		return ErrNoStore
	}
	if err := e.store.Save(ctx, name, e.Snapshot()); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	e.logger.Info("graph saved", "document", name)
	return nil
}

// Open loads the document stored under name, replacing the current graph.
func (e *Engine) Open(ctx context.Context, name string) ([]domain.NodeID, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	doc, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	return e.Load(doc)
}
