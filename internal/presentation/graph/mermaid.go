package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pictograph/pkg/domain"
)

// Options controls what GenerateMermaid draws besides the structure.
type Options struct {
	// ShowValues appends each valid node's output to its label.
	ShowValues bool
	// ShowValidity colours nodes by whether their output is current.
	ShowValidity bool
}

// maxValueLen truncates long outputs (vectors) in labels.
const maxValueLen = 32

// GenerateMermaid produces a Mermaid flowchart from a graph snapshot.
// It applies semantic styling:
// - Source (no inputs): ([Stadium])
// - Sink (no output): [/Parallelogram/]
// - Default: [Rectangle]
// Edges run from producer to consumer and are labelled with the input key.
func GenerateMermaid(nodes []domain.NodeInfo, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range nodes {
		opener, closer := "[", "]"
		switch {
		case !node.HasOutput:
			opener, closer = "[/", "/]"
		case len(node.Inputs) == 0:
			opener, closer = "([", "])"
		}

		label := node.DisplayName
		if label == "" {
			label = node.Type
		}
		if opts.ShowValues && node.HasOutput && node.Valid {
			label += "<br/>" + formatValue(node.Output)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", node.ID, opener, escape(label), closer)
	}

	for _, node := range nodes {
		for _, key := range node.InputKeys() {
			producer := node.Inputs[key]
			if producer == nil {
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", *producer, escape(key), node.ID)
		}
	}

	if opts.ShowValidity && len(nodes) > 0 {
		sb.WriteString("\n    %% Validity\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef valid fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef invalid fill:#ffebee,stroke:#c62828,stroke-dasharray:4 2,color:#000;\n")
		for _, node := range nodes {
			class := "invalid"
			if node.Valid {
				class = "valid"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", node.ID, class)
		}
	}

	return sb.String()
}

func formatValue(v any) string {
	s := fmt.Sprint(v)
	if len(s) > maxValueLen {
		s = s[:maxValueLen-3] + "..."
	}
	return s
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
