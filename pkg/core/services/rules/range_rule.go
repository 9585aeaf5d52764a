package rules

import (
	"fmt"
	"math"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// AbsoluteZeroRuleID 内置绝对零度规则的 ID
const AbsoluteZeroRuleID = "absolute_zero"

// RangeRule 实现数值范围检查
// Min/Max 以类别基准单位表示 (温度为开尔文)，因此同一规则适用于该类别的所有单位
type RangeRule struct {
	ID     string
	UnitOf domain.Category // 为空表示适用于所有类别
	Min    float64
	Max    float64
	Action domain.RuleAction
}

// NewAbsoluteZeroRule 拒绝低于绝对零度的温度
func NewAbsoluteZeroRule() *RangeRule {
	return &RangeRule{
		ID:     AbsoluteZeroRuleID,
		UnitOf: domain.CategoryTemperature,
		Min:    0,
		Max:    math.Inf(1),
		Action: domain.ActionReject,
	}
}

// Check 检查数量换算到基准单位后是否在范围内
func (r *RangeRule) Check(ctx ports.CheckContext, quantity domain.Number) ports.CheckResult {
	pass := ports.CheckResult{Quantity: quantity, Passed: true, RuleID: r.ID}
	if r.UnitOf != "" && ctx.Source.UnitOf() != r.UnitOf {
		return pass
	}

	base, err := ctx.ToBase(quantity)
	if err != nil {
		return ports.CheckResult{Quantity: quantity, RuleID: r.ID, Reason: fmt.Sprintf("cannot check range: %v", err)}
	}
	v := base.Float64()
	if v >= r.Min && v <= r.Max {
		return pass
	}

	bound := r.Min
	if v > r.Max {
		bound = r.Max
	}

	// 触发规则: 超出范围
	switch r.Action {
	case domain.ActionCorrect:
		// 修正策略: 截断 (Clamp)，再换算回源单位
		corrected, err := ctx.FromBase(ctx.Calc.FromFloat(bound))
		if err != nil {
			return ports.CheckResult{Quantity: quantity, RuleID: r.ID, Reason: fmt.Sprintf("cannot correct %s %s: %v", quantity, ctx.Source.Symbol(), err)}
		}
		return ports.CheckResult{
			Quantity:  corrected,
			Passed:    true, // 修正后仍然通过
			Corrected: true,
			Reason:    fmt.Sprintf("%s %s corrected to %s %s", quantity, ctx.Source.Symbol(), corrected, ctx.Source.Symbol()),
			RuleID:    r.ID,
		}

	case domain.ActionReject:
		fallthrough
	default:
		return ports.CheckResult{
			Quantity: quantity,
			RuleID:   r.ID,
			Reason:   fmt.Sprintf("%s %s is out of range [%g, %g] %s", quantity, ctx.Source.Symbol(), r.Min, r.Max, baseSymbol(ctx.Source)),
		}
	}
}

func baseSymbol(u *domain.Unit) string {
	if s, ok := u.BaseSymbol(); ok {
		return s
	}
	return "base units"
}
