package variant

import (
	"github.com/aretw0/pictograph/pkg/domain"
)

// Constant is a source variant returning the current value of its single parameter.
type Constant struct {
	Base
	param string
}

// Compute returns the parameter value unchanged.
func (c *Constant) Compute(_ Bindings, params Params) (any, error) {
	return params[c.param], nil
}

func newConstant(name, display, description, param string, kind domain.ParameterKind, value any) *Constant {
	return &Constant{
		Base: NewBase(Spec{
			Name:        name,
			DisplayName: display,
			Description: description,
			Parameters:  []*domain.Parameter{domain.NewParameter(param, kind, value)},
			HasOutput:   true,
			Source:      true,
		}),
		param: param,
	}
}

// NewNumber creates a constant floating point value.
func NewNumber(v float64) *Constant {
	return newConstant("NumberNode", "Number", "A constant numerical value", "Number", domain.KindDouble, v)
}

// NewInteger creates a constant integer.
func NewInteger(v int) *Constant {
	return newConstant("IntegerNode", "Integer", "A constant integer", "Integer", domain.KindInt, v)
}

// NewString creates a constant string.
func NewString(v string) *Constant {
	return newConstant("StringNode", "String", "A constant string", "String", domain.KindString, v)
}

// NewVector creates a constant vector. The slice is held and returned by
// reference, never copied.
func NewVector(v []float64) *Constant {
	if v == nil {
		v = make([]float64, 1)
	}
	return newConstant("VectorNode", "Vector", "A constant vector", "Vector", domain.KindVector, v)
}
