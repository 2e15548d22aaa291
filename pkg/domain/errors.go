package domain

import "errors"

// ErrInvalidTerminal is returned when an input key is not declared by the node's variant.
var ErrInvalidTerminal = errors.New("invalid terminal")

// ErrTerminalOccupied is returned when an input key already has a producer.
// The caller must disconnect it first.
var ErrTerminalOccupied = errors.New("terminal already connected")

// ErrUnknownParameter is returned when a parameter name is not declared by the node's variant.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrUnsupportedOperation is returned when a node without output is used as a producer.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrAbstractVariant is returned when the base node type is instantiated without a compute implementation.
var ErrAbstractVariant = errors.New("abstract node variant")

// ErrNodeNotFound is returned when a NodeID does not exist in the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrNodeInUse is returned when removing a node that still has input or output links.
var ErrNodeInUse = errors.New("node still connected")

// ErrCycle is returned when a connection would make a node depend on itself.
var ErrCycle = errors.New("connection would create a cycle")

// ErrCompute wraps failures raised by a variant's compute function.
var ErrCompute = errors.New("compute failed")

// ErrUnknownVariant is returned when a variant name is not registered.
var ErrUnknownVariant = errors.New("unknown node variant")

// ErrDuplicateVariant is returned when registering a variant name twice.
var ErrDuplicateVariant = errors.New("node variant already registered")

// ErrDocumentNotFound is returned when a document cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")
