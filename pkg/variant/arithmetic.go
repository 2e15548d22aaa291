package variant

import (
	"fmt"
	"strings"
)

var binaryInputs = []string{"arg1", "arg2"}

// Binary applies an operator to arg1 and arg2.
type Binary struct {
	Base
	op func(a, b any) (any, error)
}

// Compute returns arg1 op arg2.
func (b *Binary) Compute(in Bindings, _ Params) (any, error) {
	return b.op(in["arg1"], in["arg2"])
}

func newBinary(name, display, description string, op func(a, b any) (any, error)) *Binary {
	return &Binary{
		Base: NewBase(Spec{
			Name:        name,
			DisplayName: display,
			Description: description,
			Inputs:      binaryInputs,
			HasOutput:   true,
		}),
		op: op,
	}
}

// NewAddition creates a node adding its two inputs.
func NewAddition() *Binary {
	return newBinary("AdditionNode", "Add", "Adds two input values", Add)
}

// NewSubtraction creates a node subtracting arg2 from arg1.
func NewSubtraction() *Binary {
	return newBinary("SubtractionNode", "Subtract", "Subtracts two input values", Subtract)
}

// NewMultiplication creates a node multiplying its two inputs.
func NewMultiplication() *Binary {
	return newBinary("MultiplicationNode", "Multiply", "Multiplies two input values", Multiply)
}

// NewStringFormat creates a node substituting arg2 into the format string arg1.
func NewStringFormat() *Binary {
	return newBinary("StringFormatNode", "Format", "Format a string", Format)
}

// Format substitutes value into format. It supports the replacement fields
// a single argument can fill:
//   - "{}" once, or "{0}" any number of times, but not both in one format;
//   - "{{" and "}}" for literal braces.
//
// Named fields ("{name}"), other indices and format specs ("{:.2f}") are
// errors, as is an unmatched brace. The value is printed with %v.
func Format(format, value any) (any, error) {
	f, ok := format.(string)
	if !ok {
		return nil, fmt.Errorf("format string must be a string, got %T", format)
	}
	v := fmt.Sprint(value)

	out := make([]byte, 0, len(f)+len(v))
	var auto, manual bool
	for i := 0; i < len(f); i++ {
		switch c := f[i]; {
		case c == '{' && i+1 < len(f) && f[i+1] == '{':
			out = append(out, '{')
			i++
		case c == '}' && i+1 < len(f) && f[i+1] == '}':
			out = append(out, '}')
			i++
		case c == '}':
			return nil, fmt.Errorf("format %q: single '}' at offset %d", f, i)
		case c == '{':
			end := strings.IndexByte(f[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("format %q: unmatched '{' at offset %d", f, i)
			}
			field := f[i+1 : i+1+end]
			switch field {
			case "":
				if auto {
					return nil, fmt.Errorf("format %q has more placeholders than arguments", f)
				}
				auto = true
			case "0":
				manual = true
			default:
				return nil, fmt.Errorf("format %q: unsupported replacement field {%s}", f, field)
			}
			if auto && manual {
				return nil, fmt.Errorf("format %q mixes automatic {} and manual {0} numbering", f)
			}
			out = append(out, v...)
			i += end + 1
		default:
			out = append(out, c)
		}
	}
	return string(out), nil
}
