package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/pictograph/pkg/domain"
)

func testSchema() Schema {
	return FromParameters([]*domain.Parameter{
		domain.NewParameter("Number", domain.KindDouble, 0.0),
		domain.NewParameter("Length", domain.KindInt, 0),
	})
}

func TestValidate_Success(t *testing.T) {
	err := Validate(testSchema(), map[string]any{
		"Number": 2.5,
		"Length": 3.0,
	})
	if err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_PartialData(t *testing.T) {
	if err := Validate(testSchema(), map[string]any{"Number": 1}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Aggregates(t *testing.T) {
	err := Validate(testSchema(), map[string]any{
		"Number": "two",
		"Length": 1.5,
		"Colour": "red",
	})
	if err == nil {
		t.Fatal("Validate() error = nil, want errors")
	}

	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("ValidationErrors() len = %d, want 3", len(errs))
	}

	var ve *ValidationError
	if !errors.As(errs[0], &ve) || ve.Key != "Colour" || ve.Reason != "not declared" {
		t.Errorf("first error = %v, want undeclared Colour", errs[0])
	}
	if !strings.Contains(err.Error(), "3 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidateValue(t *testing.T) {
	if err := ValidateValue(testSchema(), "Length", 4); err != nil {
		t.Errorf("ValidateValue() error = %v", err)
	}
	if err := ValidateValue(testSchema(), "Length", "4"); err == nil {
		t.Error("ValidateValue() error = nil, want error")
	}
}
