package services

import (
	"errors"
	"log/slog"
	"math"

	"github.com/renjie/prism-units/pkg/adapters/calculator"
	"github.com/renjie/prism-units/pkg/adapters/factory"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// identityFormulaID 同一单位换算时记录在日志中的公式标识
const identityFormulaID domain.FormulaID = "identity"

// UnitConverter 单位换算门面
// 职责: 注册表解析 + 公式解析 + 计算器执行
// 可被多个 goroutine 共享；每次 Convert 返回独立的 ConversionBuilder
type UnitConverter struct {
	registry   ports.UnitRegistry
	calculator ports.Calculator
	formulas   ports.FormulaFactory
	precision  int // 结果保留的小数位数，<0 表示不舍入
	logger     *slog.Logger
}

// ConverterOption 定义配置选项函数 (Functional Option Pattern)
type ConverterOption func(*UnitConverter)

// WithFormulaFactory 设置公式工厂 (默认使用全局单例)
func WithFormulaFactory(f ports.FormulaFactory) ConverterOption {
	return func(c *UnitConverter) {
		if f != nil {
			c.formulas = f
		}
	}
}

// WithPrecision 设置结果保留的小数位数 (默认不舍入)
func WithPrecision(places int) ConverterOption {
	return func(c *UnitConverter) {
		c.precision = places
	}
}

// WithLogger 设置日志 (默认 slog.Default())
func WithLogger(logger *slog.Logger) ConverterOption {
	return func(c *UnitConverter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewUnitConverter 初始化换算服务
// registry 为 nil 时使用空注册表；calc 为 nil 时使用 float64 计算器
func NewUnitConverter(registry ports.UnitRegistry, calc ports.Calculator, opts ...ConverterOption) *UnitConverter {
	if registry == nil {
		registry = NewRegistry()
	}
	if calc == nil {
		calc = calculator.NewSimpleCalculator()
	}
	c := &UnitConverter{
		registry:   registry,
		calculator: calc,
		formulas:   factory.GetFormulaFactory(),
		precision:  -1,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry 返回使用的注册表
func (c *UnitConverter) Registry() ports.UnitRegistry { return c.registry }

// Calculator 返回使用的计算器
func (c *UnitConverter) Calculator() ports.Calculator { return c.calculator }

// Convert 设置待换算的数量，开始一次换算
func (c *UnitConverter) Convert(quantity float64) *ConversionBuilder {
	return c.Builder().Convert(quantity)
}

// ConvertString 以十进制字符串设置数量，高精度计算器下不损失精度
func (c *UnitConverter) ConvertString(quantity string) *ConversionBuilder {
	return c.Builder().ConvertString(quantity)
}

// Builder 返回处于 Idle 状态的空 builder
func (c *UnitConverter) Builder() *ConversionBuilder {
	return &ConversionBuilder{conv: c}
}

// FormulaFor 解析 source -> target 的公式
// 同一单位返回恒等公式；源单位有公式表时使用表中的公式 (缺少目标为 BadUnit)；否则回退到比例公式
func (c *UnitConverter) FormulaFor(source, target *domain.Unit) (ports.Formula, error) {
	f, _, err := c.resolveFormula(source, target)
	return f, err
}

func (c *UnitConverter) resolveFormula(source, target *domain.Unit) (ports.Formula, domain.FormulaID, error) {
	if source.Same(target) {
		return identityFormula{}, identityFormulaID, nil
	}

	id, ok, err := source.FormulaIDFor(target)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		id = domain.FormulaRatio
	}

	f, err := c.formulas.CreateFormula(id, source, target, c.calculator)
	if err != nil {
		return nil, id, err
	}
	return f, id, nil
}

// apply 执行单次换算；恒等换算原样返回，不做舍入
func (c *UnitConverter) apply(quantity domain.Number, source, target *domain.Unit) (domain.Number, error) {
	result, id, err := c.exact(quantity, source, target)
	if err != nil {
		return nil, err
	}
	if id != identityFormulaID && c.precision >= 0 {
		result = c.calculator.Round(result, c.precision)
	}

	c.logger.Debug("unit conversion",
		"from", source.RegistryKey(),
		"to", target.RegistryKey(),
		"quantity", quantity.String(),
		"result", result.String(),
		"formula", id,
		"calculator", c.calculator.Name())
	return result, nil
}

// exact 解析公式并换算，不舍入、不记录日志
func (c *UnitConverter) exact(quantity domain.Number, source, target *domain.Unit) (domain.Number, domain.FormulaID, error) {
	formula, id, err := c.resolveFormula(source, target)
	if err != nil {
		return nil, id, err
	}
	result, err := formula.Convert(quantity)
	if err != nil {
		return nil, id, err
	}
	// float64 计算器溢出时得到 ±Inf / NaN
	switch result.String() {
	case "+Inf", "-Inf", "NaN":
		return nil, id, domain.NewError(domain.KindArithmetic, "%s %s -> %s is not finite", quantity, source, target)
	}
	return result, id, nil
}

// resolveTarget 在源单位的类别内解析目标单位
// 目标符号只存在于其他类别时返回 BadUnit (跨类别换算)
func (c *UnitConverter) resolveTarget(source *domain.Unit, symbol string) (*domain.Unit, error) {
	target, err := c.registry.GetUnitOfMeasureFor(symbol, source.UnitOf())
	if err == nil {
		return target, nil
	}
	if errors.Is(err, domain.ErrUnitNotFound) {
		if other, otherErr := c.registry.GetUnitOfMeasureFor(symbol, ""); otherErr == nil {
			return nil, domain.NewError(domain.KindBadUnit, "cannot convert %s to %s: different categories", source, other)
		}
	}
	return nil, err
}

type identityFormula struct{}

func (identityFormula) Convert(quantity domain.Number) (domain.Number, error) {
	return quantity, nil
}

// Conversion ToAll 的单条结果
type Conversion struct {
	Unit  *domain.Unit
	Value domain.Number
}

// Float64 返回换算结果的 float64 值
func (c Conversion) Float64() float64 { return c.Value.Float64() }

type builderState int

const (
	stateIdle builderState = iota
	stateQuantitySet
	stateSourceSet
)

func (s builderState) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateQuantitySet:
		return "QuantitySet"
	case stateSourceSet:
		return "SourceSet"
	default:
		return "Unknown"
	}
}

// ConversionBuilder 链式换算: Convert(q).From(a).To(b)
// 状态: Idle -> QuantitySet -> SourceSet -> (To 之后) Idle
// 中间步骤的错误会被保留，由终结调用 (To / ToNumber / ToAll) 返回
// 单个 builder 不是并发安全的
type ConversionBuilder struct {
	conv     *UnitConverter
	state    builderState
	quantity domain.Number
	source   *domain.Unit
	err      error
}

// Convert 设置数量；可在任意状态调用，重新开始一次换算
func (b *ConversionBuilder) Convert(quantity float64) *ConversionBuilder {
	b.reset()
	b.state = stateQuantitySet
	if b.conv == nil {
		b.err = domain.NewError(domain.KindInvalidState, "builder is not bound to a converter")
		return b
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		b.err = domain.NewError(domain.KindInvalidArgument, "quantity %v is not finite", quantity)
		return b
	}
	b.quantity = b.conv.calculator.FromFloat(quantity)
	return b
}

// ConvertString 以十进制字符串设置数量
func (b *ConversionBuilder) ConvertString(quantity string) *ConversionBuilder {
	b.reset()
	b.state = stateQuantitySet
	if b.conv == nil {
		b.err = domain.NewError(domain.KindInvalidState, "builder is not bound to a converter")
		return b
	}
	n, err := b.conv.calculator.Parse(quantity)
	if err != nil {
		b.err = err
		return b
	}
	b.quantity = n
	return b
}

// From 按裸符号解析源单位 (多个类别同时匹配时为 AmbiguousUnit)
func (b *ConversionBuilder) From(symbol string) *ConversionBuilder {
	return b.FromUnitOf("", symbol)
}

// FromUnitOf 在指定类别内解析源单位
func (b *ConversionBuilder) FromUnitOf(unitOf domain.Category, symbol string) *ConversionBuilder {
	if b.err != nil {
		return b
	}
	if b.state != stateQuantitySet {
		b.err = domain.NewError(domain.KindInvalidState, "From(%q) called in state %s; call Convert first", symbol, b.state)
		return b
	}

	u, err := b.conv.registry.GetUnitOfMeasureFor(symbol, unitOf)
	if err != nil {
		b.err = err
		return b
	}
	b.source = u
	b.state = stateSourceSet
	return b
}

// To 换算到目标单位并返回 float64 结果 (终结调用，builder 回到 Idle)
func (b *ConversionBuilder) To(symbol string) (float64, error) {
	n, err := b.ToNumber(symbol)
	if err != nil {
		return 0, err
	}
	return n.Float64(), nil
}

// ToNumber 与 To 相同，但返回计算器的原生数值表示
func (b *ConversionBuilder) ToNumber(symbol string) (domain.Number, error) {
	defer b.reset()
	if err := b.ready("To"); err != nil {
		return nil, err
	}

	target, err := b.conv.resolveTarget(b.source, symbol)
	if err != nil {
		return nil, err
	}
	return b.conv.apply(b.quantity, b.source, target)
}

// ToAll 换算到源单位类别中的所有其他单位 (按注册顺序)
// 任一目标失败则整体失败，不返回部分结果
func (b *ConversionBuilder) ToAll() ([]Conversion, error) {
	defer b.reset()
	if err := b.ready("ToAll"); err != nil {
		return nil, err
	}

	targets := b.conv.registry.ListUnits(ports.ByCategory(b.source.UnitOf()))
	out := make([]Conversion, 0, len(targets))
	for _, target := range targets {
		if target.Same(b.source) {
			continue
		}
		v, err := b.conv.apply(b.quantity, b.source, target)
		if err != nil {
			return nil, err
		}
		out = append(out, Conversion{Unit: target, Value: v})
	}
	return out, nil
}

// Err 返回当前保留的错误
func (b *ConversionBuilder) Err() error { return b.err }

func (b *ConversionBuilder) ready(call string) error {
	if b.err != nil {
		return b.err
	}
	if b.state != stateSourceSet {
		return domain.NewError(domain.KindInvalidState, "%s called in state %s; call Convert and From first", call, b.state)
	}
	return nil
}

func (b *ConversionBuilder) reset() {
	b.state = stateIdle
	b.quantity = nil
	b.source = nil
	b.err = nil
}
