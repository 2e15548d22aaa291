package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/presentation/tui"
	"github.com/aretw0/pictograph/pkg/registry"
)

// NewRunner returns a runner for w. Terminals get the banner and a rendered
// report; anything else, or headless mode, gets plain lines.
func NewRunner(w io.Writer, headless bool) *pictograph.Runner {
	r := pictograph.NewRunner(w)
	r.Headless = headless
	if !headless && tui.IsTerminal(w) {
		tui.PrintBanner(w)
		r.Renderer = tui.NewRenderer()
	}
	return r
}

// VariantsMarkdown renders the catalog as a markdown table.
func VariantsMarkdown(entries []registry.Entry) string {
	var sb strings.Builder
	sb.WriteString("# Node variants\n\n")
	sb.WriteString("| Variant | Name | Inputs | Output | Parameters |\n")
	sb.WriteString("|---------|------|--------|--------|------------|\n")
	for _, e := range entries {
		inputs := "-"
		if len(e.Inputs) > 0 {
			inputs = strings.Join(e.Inputs, ", ")
		}
		params := make([]string, 0, len(e.Parameters))
		for _, p := range e.Parameters {
			params = append(params, fmt.Sprintf("%s (%s)", p.Name, p.Kind))
		}
		paramCol := "-"
		if len(params) > 0 {
			paramCol = strings.Join(params, ", ")
		}
		output := "no"
		if e.HasOutput {
			output = "yes"
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s |\n", e.Name, e.DisplayName, inputs, output, paramCol)
	}
	return sb.String()
}

// Render writes markdown to w, through glamour when w is a terminal.
func Render(w io.Writer, markdown string) {
	if tui.IsTerminal(w) {
		if out, err := tui.NewRenderer()(markdown); err == nil {
			markdown = out
		}
	}
	fmt.Fprint(w, markdown)
}
