/*
Package variant defines the compute capability of a node and ships the built-in node types.

A Variant declares its terminals and parameters through a Spec and supplies a pure
Compute function over the bound input values and the current parameter values.
The runtime owns everything else: links, cache, validity and notifications.

Built-in variants:

  - Sources: NumberNode, IntegerNode, StringNode, VectorNode (valid from construction),
    ZerosNode and OnesNode (valid after their first process).
  - Functions: AdditionNode, SubtractionNode, MultiplicationNode, StringFormatNode.
  - Sinks: PrinterNode, which has no output and writes to an io.Writer.

Custom variants embed Base and implement Compute:

	type Negate struct{ variant.Base }

	func NewNegate() *Negate {
		return &Negate{Base: variant.NewBase(variant.Spec{
			Name:      "NegateNode",
			Inputs:    []string{"arg1"},
			HasOutput: true,
		})}
	}

	func (n *Negate) Compute(in variant.Bindings, _ variant.Params) (any, error) {
		return variant.Subtract(0, in["arg1"])
	}
*/
package variant
