package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/pictograph/internal/presentation/graph"
	"github.com/aretw0/pictograph/pkg/domain"
)

func id(n domain.NodeID) *domain.NodeID { return &n }

func sample() []domain.NodeInfo {
	return []domain.NodeInfo{
		{ID: 1, Type: "NumberNode", DisplayName: "Number", HasOutput: true, Valid: true, Output: 2.5, Inputs: map[string]*domain.NodeID{}},
		{ID: 2, Type: "StringNode", DisplayName: "String", HasOutput: true, Valid: true, Output: `say "{}"`, Inputs: map[string]*domain.NodeID{}},
		{ID: 3, Type: "StringFormatNode", DisplayName: "Format", HasOutput: true, Inputs: map[string]*domain.NodeID{"arg1": id(2), "arg2": id(1)}},
		{ID: 4, Type: "PrinterNode", DisplayName: "Print", Inputs: map[string]*domain.NodeID{"arg1": nil}},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		opts     graph.Options
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph LR\n",
				`n1(["Number"])`,
				`n3["Format"]`,
				`n4[/"Print"/]`,
				`n2 -- "arg1" --> n3`,
				`n1 -- "arg2" --> n3`,
			},
			excludes: []string{"classDef", "<br/>", "--> n4"},
		},
		{
			name: "Values",
			opts: graph.Options{ShowValues: true},
			contains: []string{
				`n1(["Number<br/>2.5"])`,
				`n2(["String<br/>say '{}'"])`,
				`n3["Format"]`,
			},
		},
		{
			name: "Validity",
			opts: graph.Options{ShowValidity: true},
			contains: []string{
				"classDef valid",
				"classDef invalid",
				"class n1 valid;",
				"class n3 invalid;",
				"class n4 invalid;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sample(), tt.opts)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_TruncatesValues(t *testing.T) {
	nodes := []domain.NodeInfo{{
		ID: 1, DisplayName: "Ones", HasOutput: true, Valid: true,
		Output: make([]float64, 40), Inputs: map[string]*domain.NodeID{},
	}}
	got := graph.GenerateMermaid(nodes, graph.Options{ShowValues: true})
	if !strings.Contains(got, "...\"])") {
		t.Errorf("expected truncated label, got:\n%s", got)
	}
}

func TestGenerateMermaid_Empty(t *testing.T) {
	got := graph.GenerateMermaid(nil, graph.Options{ShowValidity: true})
	if got != "graph LR\n" {
		t.Errorf("GenerateMermaid(nil) = %q", got)
	}
}
