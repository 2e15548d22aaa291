package variant

import (
	"fmt"
	"math"

	"github.com/aretw0/pictograph/pkg/domain"
)

// Fill produces a vector of Length copies of a constant.
type Fill struct {
	Base
	value float64
}

// Compute builds a fresh vector of the requested length.
func (f *Fill) Compute(_ Bindings, params Params) (any, error) {
	n, ok := toInt(params["Length"])
	if !ok {
		fl, isFloat := toFloat(params["Length"])
		if !isFloat || fl != math.Trunc(fl) {
			return nil, fmt.Errorf("length must be an integer, got %T", params["Length"])
		}
		if fl > MaxVectorLength {
			return nil, fmt.Errorf("length %.0f exceeds the maximum of %d", fl, MaxVectorLength)
		}
		n = int64(fl)
	}
	if n < 0 {
		return nil, fmt.Errorf("length must not be negative, got %d", n)
	}
	if n > MaxVectorLength {
		return nil, fmt.Errorf("length %d exceeds the maximum of %d", n, MaxVectorLength)
	}
	out := make([]float64, n)
	if f.value != 0 {
		for i := range out {
			out[i] = f.value
		}
	}
	return out, nil
}

func newFill(name, display, description string, value float64) *Fill {
	return &Fill{
		Base: NewBase(Spec{
			Name:        name,
			DisplayName: display,
			Description: description,
			Parameters:  []*domain.Parameter{domain.NewParameter("Length", domain.KindInt, 0)},
			HasOutput:   true,
		}),
		value: value,
	}
}

// NewZeros creates a vector of zeros. It becomes valid once processed.
func NewZeros() *Fill {
	return newFill("ZerosNode", "Zeros", "Create a vector of zeros", 0)
}

// NewOnes creates a vector of ones. It becomes valid once processed.
func NewOnes() *Fill {
	return newFill("OnesNode", "Ones", "Create a vector of ones", 1)
}
