package domain

// DocumentVersion is the current document layout version.
const DocumentVersion = 1

// Connection links Nodes[From] (producer) into the Key terminal of Nodes[To] (consumer).
// From and To are positions in Document.Nodes, not arena NodeIDs.
type Connection struct {
	From int    `json:"from" yaml:"from" mapstructure:"from"`
	To   int    `json:"to" yaml:"to" mapstructure:"to"`
	Key  string `json:"key" yaml:"key" mapstructure:"key"`
}

// Document is a serializable graph.
// Loaders must restore parameters for every node before re-establishing connections.
type Document struct {
	Version     int              `json:"version" yaml:"version" mapstructure:"version"`
	Nodes       []NodeDescriptor `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
	Connections []Connection     `json:"connections" yaml:"connections" mapstructure:"connections"`
}

// NewDocument returns an empty document at the current version.
func NewDocument() *Document {
	return &Document{
		Version:     DocumentVersion,
		Nodes:       []NodeDescriptor{},
		Connections: []Connection{},
	}
}

// Clone returns a deep copy of the node list and connection list.
// Parameter maps are copied; vector values are copied too so the clone never
// aliases a live node's slice.
func (d *Document) Clone() *Document {
	c := &Document{
		Version:     d.Version,
		Nodes:       make([]NodeDescriptor, len(d.Nodes)),
		Connections: append([]Connection{}, d.Connections...),
	}
	for i, n := range d.Nodes {
		c.Nodes[i] = NodeDescriptor{Type: n.Type}
		if n.Parameters == nil {
			continue
		}
		c.Nodes[i].Parameters = make(map[string]any, len(n.Parameters))
		for k, v := range n.Parameters {
			if vec, ok := v.([]float64); ok {
				v = append([]float64(nil), vec...)
			}
			c.Nodes[i].Parameters[k] = v
		}
	}
	return c
}
