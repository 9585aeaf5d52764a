package formulas

import (
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// RatioFormula 默认公式: 经由基准单位的比例换算
// 约定 unitsPerBase = 多少个本单位等于 1 个基准单位，因此
// result = quantity * target.unitsPerBase / source.unitsPerBase
type RatioFormula struct {
	Source *domain.Unit
	Target *domain.Unit
	Calc   ports.Calculator
}

// NewRatioFormula 构建比例公式；跨类别换算返回 BadUnit
func NewRatioFormula(source, target *domain.Unit, calc ports.Calculator) (*RatioFormula, error) {
	if source.UnitOf() != target.UnitOf() {
		return nil, domain.NewError(domain.KindBadUnit, "cannot convert %s to %s: different categories", source, target)
	}
	return &RatioFormula{Source: source, Target: target, Calc: calc}, nil
}

// Convert 实现 ports.Formula
func (f *RatioFormula) Convert(quantity domain.Number) (domain.Number, error) {
	// 同一单位直接返回原值，不依赖浮点抵消
	if f.Source.Same(f.Target) {
		return quantity, nil
	}

	// 先乘后除: 除法的舍入只作用于最终结果
	scaled := f.Calc.Mul(quantity, f.Calc.FromFloat(f.Target.UnitsPerBase()))
	return f.Calc.Div(scaled, f.Calc.FromFloat(f.Source.UnitsPerBase()))
}
