// Package validator lints graph documents without building them.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/aretw0/pictograph/pkg/schema"
)

// Report collects every problem found in a document.
// Errors make the document unloadable; warnings leave nodes that can never
// become valid.
type Report struct {
	Errors   []string
	Warnings []string
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Err returns nil when the report has no errors.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// ValidateDocument checks doc against the variants in catalog.
// Unlike a restore, which stops at the first failure, every node and
// connection is inspected.
func ValidateDocument(doc *domain.Document, catalog []registry.Entry) *Report {
	report := &Report{}
	if doc.Version > domain.DocumentVersion {
		report.errorf("unsupported document version %d", doc.Version)
		return report
	}

	variants := make(map[string]registry.Entry, len(catalog))
	for _, e := range catalog {
		variants[e.Name] = e
	}

	// entries[i] is nil when node i has an unknown type.
	entries := make([]*registry.Entry, len(doc.Nodes))
	for i, n := range doc.Nodes {
		e, ok := variants[n.Type]
		if !ok {
			report.errorf("node %d: unknown node variant %q", i, n.Type)
			continue
		}
		entries[i] = &e
		validateParameters(report, i, &e, n.Parameters)
	}

	fed := make(map[int]map[string]int)
	edges := make(map[int][]int)
	for _, c := range doc.Connections {
		if c.From < 0 || c.From >= len(doc.Nodes) || c.To < 0 || c.To >= len(doc.Nodes) {
			report.errorf("connection %d -> %d[%s]: node index out of range", c.From, c.To, c.Key)
			continue
		}
		producer, consumer := entries[c.From], entries[c.To]
		if producer == nil || consumer == nil {
			continue
		}
		if !producer.HasOutput {
			report.errorf("connection %d -> %d[%s]: %s has no output", c.From, c.To, c.Key, producer.Name)
			continue
		}
		if !contains(consumer.Inputs, c.Key) {
			report.errorf("connection %d -> %d[%s]: %q is not an input of %s", c.From, c.To, c.Key, c.Key, consumer.Name)
			continue
		}
		if fed[c.To] == nil {
			fed[c.To] = make(map[string]int)
		}
		if prev, ok := fed[c.To][c.Key]; ok {
			report.errorf("connection %d -> %d[%s]: terminal already fed by node %d", c.From, c.To, c.Key, prev)
			continue
		}
		fed[c.To][c.Key] = c.From
		edges[c.From] = append(edges[c.From], c.To)
	}

	if cycle := findCycle(len(doc.Nodes), edges); cycle != nil {
		report.errorf("connections form a cycle through nodes %s", joinInts(cycle))
	}

	for i, e := range entries {
		if e == nil {
			continue
		}
		for _, key := range e.Inputs {
			if _, ok := fed[i][key]; !ok {
				report.warnf("node %d (%s): input %q is not connected, the node will stay invalid", i, e.Name, key)
			}
		}
	}
	return report
}

func validateParameters(report *Report, index int, e *registry.Entry, values map[string]any) {
	if len(values) == 0 {
		return
	}
	params := make([]*domain.Parameter, len(e.Parameters))
	for i := range e.Parameters {
		params[i] = &e.Parameters[i]
	}
	err := schema.Validate(schema.FromParameters(params), values)
	var agg *schema.AggregateError
	if errors.As(err, &agg) {
		for _, ve := range agg.Errors {
			report.errorf("node %d (%s): %s", index, e.Name, ve.Error())
		}
	} else if err != nil {
		report.errorf("node %d (%s): %v", index, e.Name, err)
	}
}

// findCycle returns the nodes of one cycle, in path order, or nil.
func findCycle(n int, edges map[int][]int) []int {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int, n)
	var path []int

	var visit func(int) []int
	visit = func(u int) []int {
		state[u] = onStack
		path = append(path, u)
		for _, v := range edges[u] {
			switch state[v] {
			case onStack:
				for i, p := range path {
					if p == v {
						return append([]int{}, path[i:]...)
					}
				}
			case unvisited:
				if c := visit(v); c != nil {
					return c
				}
			}
		}
		path = path[:len(path)-1]
		state[u] = done
		return nil
	}

	for u := 0; u < n; u++ {
		if state[u] == unvisited {
			if c := visit(u); c != nil {
				return c
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " -> ")
}
