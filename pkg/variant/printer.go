package variant

import (
	"fmt"
	"io"
	"os"
)

// Printer is a sink: it has no output and writes every value change to W.
type Printer struct {
	Base
	W io.Writer
}

// NewPrinter creates a printer writing to w, or to stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		Base: NewBase(Spec{
			Name:        "PrinterNode",
			DisplayName: "Print",
			Description: "A printer, with no output values",
			Inputs:      []string{"arg1"},
			HasOutput:   false,
		}),
		W: w,
	}
}

// Compute prints the bound value. The printer produces no value of its own.
func (p *Printer) Compute(in Bindings, _ Params) (any, error) {
	if _, err := fmt.Fprintf(p.W, "Node value changed to \"%v\"\n", in["arg1"]); err != nil {
		return nil, err
	}
	return nil, nil
}

// OnInvalidate reports that the printed value is stale.
func (p *Printer) OnInvalidate() {
	fmt.Fprintln(p.W, "Node output became invalid")
}
