package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// Float float64 数值表示
type Float float64

func (f Float) Float64() float64 { return float64(f) }

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// SimpleCalculator 基于 float64 的计算器 (固定精度)
type SimpleCalculator struct{}

// NewSimpleCalculator 创建 float64 计算器
func NewSimpleCalculator() *SimpleCalculator {
	return &SimpleCalculator{}
}

var _ ports.Calculator = (*SimpleCalculator)(nil)

func (c *SimpleCalculator) Name() string { return "simple" }

func (c *SimpleCalculator) FromFloat(f float64) domain.Number { return Float(f) }

func (c *SimpleCalculator) Parse(s string) (domain.Number, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidArgument, err, "invalid number %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.NewError(domain.KindInvalidArgument, "number %q is not finite", s)
	}
	return Float(f), nil
}

func (c *SimpleCalculator) Add(a, b domain.Number) domain.Number {
	return Float(toFloat(a) + toFloat(b))
}

func (c *SimpleCalculator) Sub(a, b domain.Number) domain.Number {
	return Float(toFloat(a) - toFloat(b))
}

func (c *SimpleCalculator) Mul(a, b domain.Number) domain.Number {
	return Float(toFloat(a) * toFloat(b))
}

func (c *SimpleCalculator) Div(a, b domain.Number) (domain.Number, error) {
	divisor := toFloat(b)
	if divisor == 0 {
		return nil, domain.NewError(domain.KindDivisionByZero, "%s / %s", a, b)
	}
	return Float(toFloat(a) / divisor), nil
}

func (c *SimpleCalculator) Pow(base, exp domain.Number) (domain.Number, error) {
	x, y := toFloat(base), toFloat(exp)
	if x == 0 && y < 0 {
		return nil, domain.NewError(domain.KindDivisionByZero, "%s ^ %s", base, exp)
	}
	r := math.Pow(x, y)
	if math.IsNaN(r) {
		return nil, domain.NewError(domain.KindArithmetic, "%s ^ %s is undefined", base, exp)
	}
	if math.IsInf(r, 0) {
		return nil, domain.NewError(domain.KindArithmetic, "%s ^ %s overflows float64", base, exp)
	}
	return Float(r), nil
}

// Round 通过十进制格式化舍入，避免 x*10^p 放大带来的误差
// 注意: 对二进制无法精确表示的 "半数" (如 2.675) 按其真实二进制值舍入
func (c *SimpleCalculator) Round(n domain.Number, places int) domain.Number {
	if places < 0 {
		return n
	}
	f := toFloat(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Float(f)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return Float(f)
	}
	return Float(r)
}

func toFloat(n domain.Number) float64 {
	if f, ok := n.(Float); ok {
		return float64(f)
	}
	return n.Float64()
}
