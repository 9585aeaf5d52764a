package formulas

import (
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// 温度符号
const (
	SymbolKelvin     = "K"
	SymbolCelsius    = "°C"
	SymbolFahrenheit = "°F"
	SymbolRankine    = "°R"
	SymbolDelisle    = "°De"
	SymbolNewton     = "°N"
	SymbolReaumur    = "°Ré"
	SymbolRomer      = "°Rø"
)

// temperatureScale 描述温标与摄氏度的仿射关系:
// celsius = (x - zero) * num / den
type temperatureScale struct {
	zero float64
	num  float64
	den  float64
}

var temperatureScales = map[string]temperatureScale{
	SymbolKelvin:     {zero: 273.15, num: 1, den: 1},
	SymbolCelsius:    {zero: 0, num: 1, den: 1},
	SymbolFahrenheit: {zero: 32, num: 5, den: 9},
	SymbolRankine:    {zero: 491.67, num: 5, den: 9},
	SymbolDelisle:    {zero: 150, num: -2, den: 3},
	SymbolNewton:     {zero: 0, num: 100, den: 33},
	SymbolReaumur:    {zero: 0, num: 5, den: 4},
	SymbolRomer:      {zero: 7.5, num: 40, den: 21},
}

// formulaTargets 公式标识 -> 目标温标
var formulaTargets = map[domain.FormulaID]string{
	domain.FormulaToKelvin:     SymbolKelvin,
	domain.FormulaToCelsius:    SymbolCelsius,
	domain.FormulaToFahrenheit: SymbolFahrenheit,
	domain.FormulaToRankine:    SymbolRankine,
	domain.FormulaToDelisle:    SymbolDelisle,
	domain.FormulaToNewton:     SymbolNewton,
	domain.FormulaToReaumur:    SymbolReaumur,
	domain.FormulaToRomer:      SymbolRomer,
}

// TemperatureFormulaIDs 返回所有内置温度公式标识
func TemperatureFormulaIDs() []domain.FormulaID {
	return []domain.FormulaID{
		domain.FormulaToKelvin,
		domain.FormulaToCelsius,
		domain.FormulaToFahrenheit,
		domain.FormulaToRankine,
		domain.FormulaToDelisle,
		domain.FormulaToNewton,
		domain.FormulaToReaumur,
		domain.FormulaToRomer,
	}
}

// TemperatureFormulaFor 返回换算到指定温标符号的公式标识
func TemperatureFormulaFor(symbol string) (domain.FormulaID, bool) {
	for id, s := range formulaTargets {
		if s == symbol {
			return id, true
		}
	}
	return "", false
}

// TemperatureFormula 温标之间的仿射换算 (以摄氏度为中转)
type TemperatureFormula struct {
	id     domain.FormulaID
	source temperatureScale
	target temperatureScale
	calc   ports.Calculator
}

// NewTemperatureFormula 构建温度公式
// 源温标未知，或 target 与公式标识的目标温标不一致时返回 BadUnit
func NewTemperatureFormula(id domain.FormulaID, source, target *domain.Unit, calc ports.Calculator) (*TemperatureFormula, error) {
	targetSymbol, ok := formulaTargets[id]
	if !ok {
		return nil, domain.NewError(domain.KindBadUnit, "%q is not a temperature formula", id)
	}
	if target.Symbol() != targetSymbol {
		return nil, domain.NewError(domain.KindBadUnit, "formula %q converts to %s, not %s", id, targetSymbol, target.Symbol())
	}
	src, ok := temperatureScales[source.Symbol()]
	if !ok {
		return nil, domain.NewError(domain.KindBadUnit, "%s is not a known temperature scale", source)
	}
	return &TemperatureFormula{
		id:     id,
		source: src,
		target: temperatureScales[targetSymbol],
		calc:   calc,
	}, nil
}

// ID 返回公式标识
func (f *TemperatureFormula) ID() domain.FormulaID { return f.id }

// Convert 实现 ports.Formula
func (f *TemperatureFormula) Convert(quantity domain.Number) (domain.Number, error) {
	c := f.calc

	// 1. 源温标 -> 摄氏度
	celsius, err := c.Div(
		c.Mul(c.Sub(quantity, c.FromFloat(f.source.zero)), c.FromFloat(f.source.num)),
		c.FromFloat(f.source.den),
	)
	if err != nil {
		return nil, err
	}

	// 2. 摄氏度 -> 目标温标
	scaled, err := c.Div(c.Mul(celsius, c.FromFloat(f.target.den)), c.FromFloat(f.target.num))
	if err != nil {
		return nil, err
	}
	return c.Add(scaled, c.FromFloat(f.target.zero)), nil
}
