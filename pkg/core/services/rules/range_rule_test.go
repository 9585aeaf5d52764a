package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renjie/prism-units/pkg/adapters/calculator"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services/rules"
)

// scaled builds a context for a unit that is `factor` base units
func scaled(c domain.Category, symbol string, factor float64) ports.CheckContext {
	calc := calculator.NewSimpleCalculator()
	return ports.CheckContext{
		Source: domain.MustNewUnit(domain.Definition{Name: symbol, Symbol: symbol, UnitOf: c, UnitsPerBase: 1 / factor, Base: "base"}),
		Calc:   calc,
		ToBase: func(q domain.Number) (domain.Number, error) {
			return calc.Mul(q, calc.FromFloat(factor)), nil
		},
		FromBase: func(q domain.Number) (domain.Number, error) {
			return calc.Div(q, calc.FromFloat(factor))
		},
	}
}

func TestRangeRule(t *testing.T) {
	rule := &rules.RangeRule{ID: "r", UnitOf: domain.CategoryLength, Min: 0, Max: 1000, Action: domain.ActionReject}
	ctx := scaled(domain.CategoryLength, "km", 1000)
	calc := calculator.NewSimpleCalculator()

	// Case 1: 1 km = 1000 base - Pass
	res := rule.Check(ctx, calc.FromFloat(1))
	assert.True(t, res.Passed)
	assert.False(t, res.Corrected)

	// Case 2: 2 km - Fail
	res = rule.Check(ctx, calc.FromFloat(2))
	assert.False(t, res.Passed)
	assert.Equal(t, "r", res.RuleID)
	assert.Contains(t, res.Reason, "out of range [0, 1000] base")

	// Case 3: other category - Pass
	res = rule.Check(scaled(domain.CategoryMass, "kg", 1), calc.FromFloat(1e9))
	assert.True(t, res.Passed)
}

func TestRangeRuleCorrect(t *testing.T) {
	rule := &rules.RangeRule{ID: "clamp", Min: 0, Max: 1000, Action: domain.ActionCorrect}
	ctx := scaled(domain.CategoryLength, "km", 1000)
	calc := calculator.NewSimpleCalculator()

	res := rule.Check(ctx, calc.FromFloat(-3))
	assert.True(t, res.Passed)
	assert.True(t, res.Corrected)
	assert.Equal(t, 0.0, res.Quantity.Float64())

	res = rule.Check(ctx, calc.FromFloat(7))
	assert.True(t, res.Corrected)
	assert.Equal(t, 1.0, res.Quantity.Float64())
	assert.Contains(t, res.Reason, "7 km corrected to 1 km")
}

func TestAbsoluteZeroRule(t *testing.T) {
	rule := rules.NewAbsoluteZeroRule()
	calc := calculator.NewSimpleCalculator()
	kelvin := scaled(domain.CategoryTemperature, "K", 1)

	assert.True(t, rule.Check(kelvin, calc.FromFloat(0)).Passed)
	assert.False(t, rule.Check(kelvin, calc.FromFloat(-0.5)).Passed)
}
