package validator

import (
	"io"
	"strings"
	"testing"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/registry"
)

func catalog() []registry.Entry {
	return registry.Default(io.Discard).Catalog()
}

func TestValidateDocument_Valid(t *testing.T) {
	doc := &domain.Document{
		Version: 1,
		Nodes: []domain.NodeDescriptor{
			{Type: "NumberNode", Parameters: map[string]any{"Number": 2.5}},
			{Type: "IntegerNode", Parameters: map[string]any{"Integer": 3}},
			{Type: "AdditionNode"},
			{Type: "PrinterNode"},
		},
		Connections: []domain.Connection{
			{From: 0, To: 2, Key: "arg1"},
			{From: 1, To: 2, Key: "arg2"},
			{From: 2, To: 3, Key: "arg1"},
		},
	}

	report := ValidateDocument(doc, catalog())
	if err := report.Err(); err != nil {
		t.Fatalf("expected a valid document, got: %v", err)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", report.Warnings)
	}
}

func TestValidateDocument_CollectsEveryProblem(t *testing.T) {
	doc := &domain.Document{
		Nodes: []domain.NodeDescriptor{
			{Type: "NumberNode", Parameters: map[string]any{"Number": "two"}},
			{Type: "TeleportNode"},
			{Type: "AdditionNode"},
			{Type: "PrinterNode"},
			{Type: "SubtractionNode", Parameters: map[string]any{"Colour": "red"}},
		},
		Connections: []domain.Connection{
			{From: 0, To: 2, Key: "arg1"},
			{From: 0, To: 2, Key: "arg1"},
			{From: 3, To: 2, Key: "arg2"},
			{From: 0, To: 2, Key: "arg9"},
			{From: 0, To: 7, Key: "arg1"},
		},
	}

	report := ValidateDocument(doc, catalog())
	want := []string{
		`node 0 (NumberNode): field "Number"`,
		`node 1: unknown node variant "TeleportNode"`,
		`node 4 (SubtractionNode): field "Colour"`,
		"terminal already fed by node 0",
		"PrinterNode has no output",
		`"arg9" is not an input of AdditionNode`,
		"node index out of range",
	}
	all := strings.Join(report.Errors, "\n")
	for _, w := range want {
		if !strings.Contains(all, w) {
			t.Errorf("missing error %q in:\n%s", w, all)
		}
	}
	if len(report.Errors) != len(want) {
		t.Errorf("expected %d errors, got %d:\n%s", len(want), len(report.Errors), all)
	}

	warnings := strings.Join(report.Warnings, "\n")
	if !strings.Contains(warnings, `node 2 (AdditionNode): input "arg2" is not connected`) {
		t.Errorf("expected unconnected arg2 warning, got:\n%s", warnings)
	}
	if !strings.Contains(warnings, `node 3 (PrinterNode): input "arg1" is not connected`) {
		t.Errorf("expected unconnected printer warning, got:\n%s", warnings)
	}

	err := report.Err()
	if err == nil || !strings.HasPrefix(err.Error(), "found 7 errors:") {
		t.Errorf("unexpected aggregate error: %v", err)
	}
}

func TestValidateDocument_Cycle(t *testing.T) {
	doc := &domain.Document{
		Nodes: []domain.NodeDescriptor{
			{Type: "NumberNode"},
			{Type: "AdditionNode"},
			{Type: "MultiplicationNode"},
		},
		Connections: []domain.Connection{
			{From: 0, To: 1, Key: "arg1"},
			{From: 2, To: 1, Key: "arg2"},
			{From: 1, To: 2, Key: "arg1"},
			{From: 0, To: 2, Key: "arg2"},
		},
	}

	report := ValidateDocument(doc, catalog())
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "cycle through nodes 1 -> 2") {
		t.Errorf("expected a single cycle error, got %v", report.Errors)
	}
}

func TestValidateDocument_Version(t *testing.T) {
	report := ValidateDocument(&domain.Document{Version: 99}, catalog())
	if report.Err() == nil {
		t.Error("expected a version error")
	}
}
