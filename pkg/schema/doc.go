// Package schema validates parameter values against their declared kinds.
//
// Every domain.ParameterKind maps to a Type validator. A Schema maps parameter
// names to types and is usually derived from a variant's parameter templates:
//
//	s := schema.FromParameters(v.Spec().Parameters)
//	if err := schema.Validate(s, map[string]any{"Number": 2.5}); err != nil {
//	    // Handle validation errors
//	}
//
// Validation is lenient about numeric representations produced by decoders:
// an int parameter accepts a whole float64 (JSON) and a vector accepts any
// slice of numbers ([]any from JSON or YAML).
//
// The runtime itself never validates; loaders and adapters do, before calling
// AdjustParameter.
package schema
