package document

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/aretw0/pictograph/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// ErrUnsupportedVersion is returned when a document was written by a newer layout.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// ErrInvalidConnection is returned when a connection references a node position
// outside the document.
var ErrInvalidConnection = errors.New("invalid connection")

// Encode captures the graph as a document. Node order follows creation order
// and connections are listed per consumer in input-key order.
func Encode(r ports.GraphReader) *domain.Document {
	doc := domain.NewDocument()
	infos := r.Nodes()

	index := make(map[domain.NodeID]int, len(infos))
	for i, info := range infos {
		index[info.ID] = i

		desc := domain.NodeDescriptor{Type: info.Type}
		if len(info.Parameters) > 0 {
			desc.Parameters = make(map[string]any, len(info.Parameters))
			for _, p := range info.Parameters {
				desc.Parameters[p.Name] = p.Value
			}
		}
		doc.Nodes = append(doc.Nodes, desc)
	}

	for i, info := range infos {
		for _, key := range info.InputKeys() {
			producer := info.Inputs[key]
			if producer == nil {
				continue
			}
			doc.Connections = append(doc.Connections, domain.Connection{
				From: index[*producer],
				To:   i,
				Key:  key,
			})
		}
	}
	return doc
}

// Restore rebuilds doc into b and returns the created NodeIDs indexed by
// document position. On error, nodes created so far are left in b.
func Restore(doc *domain.Document, b ports.GraphBuilder) ([]domain.NodeID, error) {
	if doc.Version > domain.DocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	ids := make([]domain.NodeID, 0, len(doc.Nodes))
	for i, desc := range doc.Nodes {
		id, err := b.AddNode(desc.Type)
		if err != nil {
			return ids, fmt.Errorf("node %d: %w", i, err)
		}
		ids = append(ids, id)

		if err := ApplyParameters(b, id, desc.Parameters); err != nil {
			return ids, fmt.Errorf("node %d (%s): %w", i, desc.Type, err)
		}
	}

	for _, c := range doc.Connections {
		if c.From < 0 || c.From >= len(ids) || c.To < 0 || c.To >= len(ids) {
			return ids, fmt.Errorf("%w: %d -> %d[%s]", ErrInvalidConnection, c.From, c.To, c.Key)
		}
		if err := b.ConnectInput(ids[c.To], c.Key, ids[c.From]); err != nil {
			return ids, fmt.Errorf("connection %d -> %d[%s]: %w", c.From, c.To, c.Key, err)
		}
	}
	return ids, nil
}

// ApplyParameters validates every value against the node's parameter kinds,
// then coerces and adjusts them in name order. Nothing is adjusted when any
// value is rejected.
func ApplyParameters(b ports.GraphBuilder, id domain.NodeID, values map[string]any) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	templates := make(map[string]domain.Parameter, len(names))
	s := make(schema.Schema, len(names))
	for _, name := range names {
		tmpl, err := b.Parameter(id, name)
		if err != nil {
			return err
		}
		templates[name] = tmpl
		s[name] = schema.ForParameter(&tmpl)
	}
	if err := schema.Validate(s, values); err != nil {
		return err
	}

	for _, name := range names {
		value, err := Coerce(templates[name].Kind, values[name])
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		if err := b.AdjustParameter(id, name, value); err != nil {
			return err
		}
	}
	return nil
}

// Coerce converts a decoded value into the Go type variants expect for kind:
// int for KindInt, float64 for KindDouble and []float64 for KindVector.
// Other kinds are returned unchanged.
func Coerce(kind domain.ParameterKind, value any) (any, error) {
	var target reflect.Type
	switch kind {
	case domain.KindInt:
		target = reflect.TypeOf(0)
	case domain.KindDouble:
		target = reflect.TypeOf(0.0)
	case domain.KindVector:
		target = reflect.TypeOf([]float64(nil))
	default:
		return value, nil
	}
	if value == nil || reflect.TypeOf(value) == target {
		return value, nil
	}

	out := reflect.New(target)
	if err := mapstructure.Decode(value, out.Interface()); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}
