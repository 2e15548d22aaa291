package registry_test

import (
	"testing"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/aretw0/pictograph/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Builtins(t *testing.T) {
	r := registry.Default(nil)

	assert.Equal(t, []string{
		"AdditionNode",
		"IntegerNode",
		"MultiplicationNode",
		"NumberNode",
		"OnesNode",
		"PrinterNode",
		"StringFormatNode",
		"StringNode",
		"SubtractionNode",
		"VectorNode",
		"ZerosNode",
	}, r.Names())

	v, err := r.New("AdditionNode")
	require.NoError(t, err)
	assert.Equal(t, []string{"arg1", "arg2"}, v.Spec().Inputs)
}

func TestNew_Errors(t *testing.T) {
	r := registry.Default(nil)

	_, err := r.New("Node")
	assert.ErrorIs(t, err, domain.ErrAbstractVariant)

	_, err = r.New("DivisionNode")
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestRegister_Duplicate(t *testing.T) {
	r := registry.NewRegistry()
	f := func() variant.Variant { return variant.NewNumber(1) }

	require.NoError(t, r.Register(f))
	assert.ErrorIs(t, r.Register(f), domain.ErrDuplicateVariant)
	assert.ErrorIs(t, r.Register(func() variant.Variant { return nil }), domain.ErrAbstractVariant)
}

func TestNew_ReturnsFreshInstances(t *testing.T) {
	r := registry.Default(nil)

	a, err := r.New("NumberNode")
	require.NoError(t, err)
	b, err := r.New("NumberNode")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestCatalog(t *testing.T) {
	entries := registry.Default(nil).Catalog()
	require.Len(t, entries, 11)

	var printer, number registry.Entry
	for _, e := range entries {
		switch e.Name {
		case "PrinterNode":
			printer = e
		case "NumberNode":
			number = e
		}
	}
	assert.Equal(t, "Print", printer.DisplayName)
	assert.False(t, printer.HasOutput)
	assert.Equal(t, []string{"arg1"}, printer.Inputs)
	assert.Empty(t, printer.Parameters)

	assert.NotNil(t, number.Inputs, "catalog entries always carry an input list")
	require.Len(t, number.Parameters, 1)
	assert.Equal(t, "Number", number.Parameters[0].Name)
	assert.Equal(t, domain.KindDouble, number.Parameters[0].Kind)
}
