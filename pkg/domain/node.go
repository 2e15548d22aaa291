package domain

import (
	"sort"
	"strconv"
)

// NodeID identifies a node inside a graph arena.
// Links between nodes are expressed as NodeIDs, never as direct references.
type NodeID uint64

func (id NodeID) String() string {
	return "n" + strconv.FormatUint(uint64(id), 10)
}

// NodeDescriptor holds enough information to recreate a node:
// the registered variant name and the current parameter values.
type NodeDescriptor struct {
	Type       string         `json:"type" yaml:"type" mapstructure:"type"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}

// NodeInfo is a read-only snapshot of a node, used for introspection and presentation.
type NodeInfo struct {
	ID          NodeID             `json:"id"`
	Type        string             `json:"type"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description,omitempty"`
	HasOutput   bool               `json:"has_output"`
	AutoProcess bool               `json:"auto_process"`
	Valid       bool               `json:"valid"`
	Output      any                `json:"output,omitempty"`
	Inputs      map[string]*NodeID `json:"inputs"`
	Outputs     []NodeID           `json:"outputs"`
	Parameters  []Parameter        `json:"parameters,omitempty"`
}

// InputKeys returns the declared input keys in a stable order.
func (n NodeInfo) InputKeys() []string {
	keys := make([]string, 0, len(n.Inputs))
	for k := range n.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
