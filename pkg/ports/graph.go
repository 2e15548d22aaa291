package ports

import "github.com/aretw0/pictograph/pkg/domain"

// GraphReader exposes a read-only view of a graph.
type GraphReader interface {
	// Nodes returns a snapshot of every node in creation order.
	Nodes() []domain.NodeInfo
}

// GraphBuilder is the minimal surface needed to rebuild a graph from a document.
type GraphBuilder interface {
	// AddNode instantiates the registered variant typeName.
	AddNode(typeName string) (domain.NodeID, error)
	// Parameter returns the template of a declared parameter.
	Parameter(id domain.NodeID, name string) (domain.Parameter, error)
	// AdjustParameter sets a parameter value and recomputes when ready.
	AdjustParameter(id domain.NodeID, name string, value any) error
	// ConnectInput links producer into consumer's key terminal.
	ConnectInput(consumer domain.NodeID, key string, producer domain.NodeID) error
}

// Editor is the editing surface adapters drive.
type Editor interface {
	GraphReader
	GraphBuilder

	RemoveNode(id domain.NodeID) error
	DisconnectInput(consumer domain.NodeID, key string) error
	Process(id domain.NodeID) error
	Invalidate(id domain.NodeID) error
	Inspect(id domain.NodeID) (domain.NodeInfo, error)
	Snapshot() *domain.Document
}
