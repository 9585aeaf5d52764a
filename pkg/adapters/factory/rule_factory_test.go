package factory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renjie/prism-units/pkg/adapters/factory"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services/rules"
)

func TestCreateRangeRule(t *testing.T) {
	f := factory.NewRuleFactory()

	r, err := f.CreateRule(domain.CheckRule{
		ID:         "positive_length",
		UnitOf:     domain.CategoryLength,
		Type:       domain.RuleTypeRange,
		Enabled:    true,
		Parameters: map[string]any{"min": 0.0},
	})
	require.NoError(t, err)

	rr, ok := r.(*rules.RangeRule)
	require.True(t, ok)
	assert.Equal(t, "positive_length", rr.ID)
	assert.Equal(t, 0.0, rr.Min)
	assert.True(t, math.IsInf(rr.Max, 1))
	assert.Equal(t, domain.ActionReject, rr.Action, "action defaults to reject")
}

func TestCreateRuleErrors(t *testing.T) {
	f := factory.NewRuleFactory()

	cases := map[string]domain.CheckRule{
		"unknown type":   {ID: "x", Type: "TREND"},
		"no bounds":      {ID: "x", Type: domain.RuleTypeRange},
		"min above max":  {ID: "x", Type: domain.RuleTypeRange, Parameters: map[string]any{"min": 5.0, "max": 1.0}},
		"non-numeric":    {ID: "x", Type: domain.RuleTypeRange, Parameters: map[string]any{"min": "zero"}},
		"unknown action": {ID: "x", Type: domain.RuleTypeRange, Action: "FLAG_ONLY", Parameters: map[string]any{"min": 0.0}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := f.CreateRule(cfg)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Nil(t, r)
		})
	}
}

func TestCreateRulesOrdersByPriority(t *testing.T) {
	f := factory.NewRuleFactory()

	built, err := f.CreateRules([]domain.CheckRule{
		{ID: "low", Type: domain.RuleTypeRange, Enabled: true, Priority: 1, Parameters: map[string]any{"min": 0.0}},
		{ID: "off", Type: domain.RuleTypeRange, Enabled: false, Priority: 99, Parameters: map[string]any{"min": 0.0}},
		{ID: "high", Type: domain.RuleTypeRange, Enabled: true, Priority: 10, Parameters: map[string]any{"max": 1.0}},
	})
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Equal(t, "high", built[0].(*rules.RangeRule).ID)
	assert.Equal(t, "low", built[1].(*rules.RangeRule).ID)

	_, err = f.CreateRules([]domain.CheckRule{{ID: "bad", Type: "NOPE", Enabled: true}})
	assert.ErrorContains(t, err, "convert rule bad failed")
}

func TestRegisterCustomRule(t *testing.T) {
	f := factory.NewRuleFactory()
	f.Register("ALWAYS", func(rule domain.CheckRule) (ports.RequestRule, error) {
		return &rules.RangeRule{ID: rule.ID, Min: math.Inf(-1), Max: math.Inf(1)}, nil
	})

	r, err := f.CreateRule(domain.CheckRule{ID: "any", Type: "ALWAYS"})
	require.NoError(t, err)
	assert.NotNil(t, r)
	assert.Same(t, factory.GetRuleFactory(), factory.GetRuleFactory())
}
