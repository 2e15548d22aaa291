package schema

import "sort"

// Schema is a map of parameter names to their expected types.
type Schema map[string]Type

// Validate checks that every entry of data is declared by the schema and
// conforms to its type. Parameters absent from data keep their current value,
// so missing entries are not an error.
func Validate(schema Schema, data map[string]any) error {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		value := data[name]
		typ, declared := schema[name]
		if !declared {
			errs = append(errs, &ValidationError{
				Key:    name,
				Reason: "not declared",
				Value:  value,
			})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    name,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateValue checks a single value against the schema entry for name.
func ValidateValue(schema Schema, name string, value any) error {
	return Validate(schema, map[string]any{name: value})
}
