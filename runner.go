package pictograph

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pictograph/pkg/domain"
)

// Runner evaluates an engine's graph and reports every node's value.
// It is used by the CLI and is easy to drive from tests.
type Runner struct {
	Output io.Writer
	// Headless prints one plain line per node instead of a markdown report.
	Headless bool
	// Evaluated skips the refresh for a graph that was just loaded, so
	// printers do not fire a second time.
	Evaluated bool
	Renderer  ContentRenderer
}

// ContentRenderer is a function that transforms the markdown report before output.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner writing to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Run refreshes the graph, unless Evaluated is set, and writes the report.
// Compute errors are reported after the values, so a partially failing graph
// still shows what could be evaluated.
func (r *Runner) Run(engine *Engine) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	var runErr error
	if !r.Evaluated {
		runErr = engine.Refresh()
	}
	nodes := engine.Nodes()

	if r.Headless {
		for _, n := range nodes {
			fmt.Fprintln(r.Output, FormatLine(n))
		}
		return runErr
	}

	report := Report(engine.Name, nodes)
	if r.Renderer != nil {
		rendered, err := r.Renderer(report)
		if err == nil {
			report = rendered
		}
	}
	fmt.Fprint(r.Output, report)
	return runErr
}

// FormatLine renders a node as "n1 NumberNode = 2.5", or "<invalid>" when stale.
func FormatLine(n domain.NodeInfo) string {
	switch {
	case !n.HasOutput:
		return fmt.Sprintf("%s %s (sink, %s)", n.ID, n.Type, validity(n.Valid))
	case !n.Valid:
		return fmt.Sprintf("%s %s = <invalid>", n.ID, n.Type)
	default:
		return fmt.Sprintf("%s %s = %v", n.ID, n.Type, n.Output)
	}
}

// Report renders nodes as a markdown table.
func Report(title string, nodes []domain.NodeInfo) string {
	if title == "" {
		title = "Graph"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(nodes) == 0 {
		sb.WriteString("_empty graph_\n")
		return sb.String()
	}

	sb.WriteString("| ID | Node | State | Output |\n")
	sb.WriteString("|----|------|-------|--------|\n")
	for _, n := range nodes {
		out := "-"
		if n.HasOutput && n.Valid {
			out = "`" + fmt.Sprint(n.Output) + "`"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", n.ID, n.DisplayName, validity(n.Valid), out)
	}
	return sb.String()
}

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
