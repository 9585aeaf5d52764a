package ports

import "github.com/renjie/prism-units/pkg/core/domain"

// Formula 单条换算规则 (源单位 -> 目标单位)
// Convert 必须是输入数量的纯函数，没有副作用
type Formula interface {
	Convert(quantity domain.Number) (domain.Number, error)
}

// FormulaFactory 按符号标识构建公式
// 取代按类名动态实例化的做法
type FormulaFactory interface {
	CreateFormula(id domain.FormulaID, source, target *domain.Unit, calc Calculator) (Formula, error)
}
