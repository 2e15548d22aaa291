package domain

// ParameterKind tags the value a parameter holds.
// It is informational for the runtime; editors and loaders use it to pick
// widgets and to coerce decoded values.
type ParameterKind string

const (
	KindInt     ParameterKind = "int"
	KindDouble  ParameterKind = "double"
	KindString  ParameterKind = "string"
	KindBool    ParameterKind = "bool"
	KindOptions ParameterKind = "options"
	KindVector  ParameterKind = "vector"
)

// Parameter is a user-adjustable value independent of graph connections.
type Parameter struct {
	Name string        `json:"name" yaml:"name" mapstructure:"name"`
	Kind ParameterKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Default is an optional baseline. It is never applied automatically.
	Default any `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`

	// Values lists the allowed values. Only populated for KindOptions.
	Values []any `json:"values,omitempty" yaml:"values,omitempty" mapstructure:"values"`

	Value any `json:"value" yaml:"value" mapstructure:"value"`
}

// NewParameter creates a parameter holding value.
func NewParameter(name string, kind ParameterKind, value any) *Parameter {
	return &Parameter{
		Name:  name,
		Kind:  kind,
		Value: value,
	}
}

// NewOptionsParameter creates an options parameter restricted to values.
func NewOptionsParameter(name string, values []any, value any) *Parameter {
	return &Parameter{
		Name:   name,
		Kind:   KindOptions,
		Values: values,
		Value:  value,
	}
}

// Clone returns a shallow copy. Value is shared, matching how vectors are held by reference.
func (p *Parameter) Clone() *Parameter {
	c := *p
	if p.Values != nil {
		c.Values = append([]any(nil), p.Values...)
	}
	return &c
}
