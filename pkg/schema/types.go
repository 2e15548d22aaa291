package schema

import (
	"fmt"
	"reflect"

	"github.com/aretw0/pictograph/pkg/domain"
)

// Type defines the contract for value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// DoubleType validates floating-point values. Integers are accepted.
type DoubleType struct{}

func (t *DoubleType) Name() string { return "double" }

func (t *DoubleType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("expected double, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// OneOfType accepts only the listed values.
type OneOfType struct {
	values []any
}

func (t *OneOfType) Name() string { return "options" }

func (t *OneOfType) Validate(value any) error {
	for _, allowed := range t.values {
		if reflect.DeepEqual(allowed, value) {
			return nil
		}
	}
	return fmt.Errorf("value %v is not one of %v", value, t.values)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Double creates a floating-point type validator.
func Double() Type { return &DoubleType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// OneOf creates a validator accepting only values.
func OneOf(values ...any) Type {
	return &OneOfType{values: values}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForParameter returns the validator matching the parameter's kind.
// Unknown kinds accept any value, since kinds are open-ended for custom variants.
func ForParameter(p *domain.Parameter) Type {
	switch p.Kind {
	case domain.KindInt:
		return Int()
	case domain.KindDouble:
		return Double()
	case domain.KindString:
		return String()
	case domain.KindBool:
		return Bool()
	case domain.KindVector:
		return Slice(Double())
	case domain.KindOptions:
		return OneOf(p.Values...)
	default:
		return Custom(string(p.Kind), func(any) error { return nil })
	}
}

// FromParameters builds a Schema from parameter templates.
func FromParameters(params []*domain.Parameter) Schema {
	s := make(Schema, len(params))
	for _, p := range params {
		s[p.Name] = ForParameter(p)
	}
	return s
}
