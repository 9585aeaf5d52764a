package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renjie/prism-units/pkg/adapters/calculator"
	"github.com/renjie/prism-units/pkg/adapters/factory"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services/formulas"
)

type doubling struct{ calc ports.Calculator }

func (d doubling) Convert(q domain.Number) (domain.Number, error) {
	return d.calc.Mul(q, d.calc.FromFloat(2)), nil
}

func unitOf(c domain.Category, symbol, base string) *domain.Unit {
	return domain.MustNewUnit(domain.Definition{Name: symbol, Symbol: symbol, UnitOf: c, UnitsPerBase: 1, Base: base})
}

func TestBuiltinFormulas(t *testing.T) {
	f := factory.NewFormulaFactory()

	assert.True(t, f.Has(domain.FormulaRatio))
	for _, id := range formulas.TemperatureFormulaIDs() {
		assert.True(t, f.Has(id), id)
	}

	calc := calculator.NewSimpleCalculator()
	formula, err := f.CreateFormula(domain.FormulaToFahrenheit,
		unitOf(domain.CategoryTemperature, "°C", "K"),
		unitOf(domain.CategoryTemperature, "°F", "K"),
		calc)
	require.NoError(t, err)

	got, err := formula.Convert(calc.FromFloat(100))
	require.NoError(t, err)
	assert.InDelta(t, 212.0, got.Float64(), 1e-9)
}

func TestCreateFormulaErrors(t *testing.T) {
	f := factory.NewFormulaFactory()
	calc := calculator.NewSimpleCalculator()
	m := unitOf(domain.CategoryLength, "m", "m")

	// Case 1: unknown identifier
	_, err := f.CreateFormula("no.such.formula", m, m, calc)
	assert.ErrorIs(t, err, domain.ErrBadUnit)

	// Case 2: builder rejects its inputs, no typed-nil formula leaks out
	formula, err := f.CreateFormula(domain.FormulaRatio, m, unitOf(domain.CategoryMass, "kg", "kg"), calc)
	assert.ErrorIs(t, err, domain.ErrBadUnit)
	assert.Nil(t, formula)
}

func TestRegisterCustomFormula(t *testing.T) {
	f := factory.NewFormulaFactory()
	f.Register("test.double", func(_, _ *domain.Unit, calc ports.Calculator) (ports.Formula, error) {
		return doubling{calc: calc}, nil
	})

	calc := calculator.NewSimpleCalculator()
	m := unitOf(domain.CategoryLength, "m", "m")
	formula, err := f.CreateFormula("test.double", m, m, calc)
	require.NoError(t, err)

	got, err := formula.Convert(calc.FromFloat(21))
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Float64())

	// Isolated instances do not leak into the singleton
	assert.False(t, factory.GetFormulaFactory().Has("test.double"))
	assert.Same(t, factory.GetFormulaFactory(), factory.GetFormulaFactory())
}
