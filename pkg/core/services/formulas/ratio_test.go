package formulas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renjie/prism-units/pkg/adapters/calculator"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/services/formulas"
)

func length(symbol string, per float64) *domain.Unit {
	return domain.MustNewUnit(domain.Definition{
		Name: symbol, Symbol: symbol, UnitOf: domain.CategoryLength, UnitsPerBase: per, Base: "m",
	})
}

func TestRatioFormula(t *testing.T) {
	calc := calculator.NewSimpleCalculator()
	km, m, cm := length("km", 0.001), length("m", 1), length("cm", 100)

	cases := []struct {
		source, target *domain.Unit
		in, want       float64
	}{
		{km, m, 5, 5000},
		{m, km, 1500, 1.5},
		{km, cm, 1, 100000},
		{cm, m, 250, 2.5},
	}
	for _, tc := range cases {
		f, err := formulas.NewRatioFormula(tc.source, tc.target, calc)
		require.NoError(t, err)

		got, err := f.Convert(calc.FromFloat(tc.in))
		require.NoError(t, err)
		assert.InEpsilon(t, tc.want, got.Float64(), 1e-12, "%v %s -> %s", tc.in, tc.source, tc.target)
	}
}

func TestRatioFormulaIdentity(t *testing.T) {
	calc := calculator.NewSimpleCalculator()
	m := length("m", 1)

	f, err := formulas.NewRatioFormula(m, m, calc)
	require.NoError(t, err)

	in := calc.FromFloat(0.1)
	got, err := f.Convert(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestRatioFormulaRejectsCrossCategory(t *testing.T) {
	kg := domain.MustNewUnit(domain.Definition{Name: "kilogram", Symbol: "kg", UnitOf: domain.CategoryMass, UnitsPerBase: 1, Base: "kg"})

	_, err := formulas.NewRatioFormula(length("m", 1), kg, calculator.NewSimpleCalculator())
	assert.ErrorIs(t, err, domain.ErrBadUnit)
}
