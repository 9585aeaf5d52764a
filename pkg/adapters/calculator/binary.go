package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// DefaultScale 除法与分数次幂保留的小数位数
const DefaultScale int32 = 32

// Decimal 任意精度十进制数值表示
type Decimal struct {
	d decimal.Decimal
}

// NewDecimal 包装一个 decimal.Decimal
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{d: d} }

func (n Decimal) Float64() float64 { return n.d.InexactFloat64() }

func (n Decimal) String() string { return n.d.String() }

// Decimal 返回底层的 decimal.Decimal
func (n Decimal) Decimal() decimal.Decimal { return n.d }

// BinaryCalculator 任意精度计算器
// 加减乘无损；除法和幂运算按 scale 截取小数位
type BinaryCalculator struct {
	scale int32
}

// BinaryOption 配置 BinaryCalculator
type BinaryOption func(*BinaryCalculator)

// WithScale 设置除法/幂运算保留的小数位数 (默认 32)
func WithScale(places int32) BinaryOption {
	return func(c *BinaryCalculator) {
		if places >= 0 {
			c.scale = places
		}
	}
}

// NewBinaryCalculator 创建任意精度计算器
func NewBinaryCalculator(opts ...BinaryOption) *BinaryCalculator {
	c := &BinaryCalculator{scale: DefaultScale}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Calculator = (*BinaryCalculator)(nil)

func (c *BinaryCalculator) Name() string { return "binary" }

// Scale 返回配置的小数位数
func (c *BinaryCalculator) Scale() int32 { return c.scale }

// FromFloat 使用 float64 的最短十进制表示 (0.1 -> "0.1")
// f 必须是有限值，否则 panic (与 MustNewUnit 相同)；不可信输入请使用 Parse
func (c *BinaryCalculator) FromFloat(f float64) domain.Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(domain.NewError(domain.KindInvalidArgument, "cannot represent %v as a decimal", f))
	}
	return Decimal{d: decimal.NewFromFloat(f)}
}

func (c *BinaryCalculator) Parse(s string) (domain.Number, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidArgument, err, "invalid number %q", s)
	}
	return Decimal{d: d}, nil
}

func (c *BinaryCalculator) Add(a, b domain.Number) domain.Number {
	return Decimal{d: c.dec(a).Add(c.dec(b))}
}

func (c *BinaryCalculator) Sub(a, b domain.Number) domain.Number {
	return Decimal{d: c.dec(a).Sub(c.dec(b))}
}

func (c *BinaryCalculator) Mul(a, b domain.Number) domain.Number {
	return Decimal{d: c.dec(a).Mul(c.dec(b))}
}

func (c *BinaryCalculator) Div(a, b domain.Number) (domain.Number, error) {
	divisor := c.dec(b)
	if divisor.IsZero() {
		return nil, domain.NewError(domain.KindDivisionByZero, "%s / %s", a, b)
	}
	return Decimal{d: c.dec(a).DivRound(divisor, c.scale)}, nil
}

func (c *BinaryCalculator) Pow(base, exp domain.Number) (domain.Number, error) {
	x, y := c.dec(base), c.dec(exp)
	if x.IsZero() && y.IsNegative() {
		return nil, domain.NewError(domain.KindDivisionByZero, "%s ^ %s", base, exp)
	}
	r, err := x.PowWithPrecision(y, c.scale)
	if err != nil {
		return nil, domain.WrapError(domain.KindArithmetic, err, "%s ^ %s", base, exp)
	}
	return Decimal{d: r}, nil
}

func (c *BinaryCalculator) Round(n domain.Number, places int) domain.Number {
	if places < 0 {
		return n
	}
	return Decimal{d: c.dec(n).Round(int32(places))}
}

// dec 将任意 Number 转换为 decimal；外部表示通过 String() 无损转换
func (c *BinaryCalculator) dec(n domain.Number) decimal.Decimal {
	if d, ok := n.(Decimal); ok {
		return d.d
	}
	if d, err := decimal.NewFromString(n.String()); err == nil {
		return d
	}
	return c.FromFloat(n.Float64()).(Decimal).d
}
