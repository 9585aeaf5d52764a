package domain

import (
	"math"
	"strings"
)

// Definition 单位的数据记录 (配置输入)
// 单位目录只需要提供这些字段，NewUnit 负责校验并固化
type Definition struct {
	Name             string
	Symbol           string
	ScientificSymbol string // 为空时默认等于 Symbol
	UnitOf           Category
	// UnitsPerBase 多少个本单位等于 1 个基准单位
	// 例如以米为基准: km = 0.001, cm = 100
	UnitsPerBase float64
	Base         string               // 基准单位的符号 (同类别内)；为空表示未配置
	Formulas     map[string]FormulaID // 目标单位符号 -> 公式标识
	SI           SIClass
}

// Unit 代表一个度量单位
// 构造后不可变；注册表的覆盖操作是替换而不是修改
type Unit struct {
	name             string
	symbol           string
	scientificSymbol string
	unitOf           Category
	unitsPerBase     float64
	base             string
	formulas         map[string]FormulaID
	si               SIClass
}

// NewUnit 校验定义并构造单位 (configure 步骤，只执行一次)
func NewUnit(def Definition) (*Unit, error) {
	name := strings.TrimSpace(def.Name)
	symbol := strings.TrimSpace(def.Symbol)
	if symbol == "" {
		return nil, NewError(KindInvalidArgument, "unit symbol is empty (name %q)", def.Name)
	}
	if name == "" {
		return nil, NewError(KindInvalidArgument, "unit %q has no name", symbol)
	}
	if strings.TrimSpace(string(def.UnitOf)) == "" {
		return nil, NewError(KindInvalidArgument, "unit %q has no category", symbol)
	}
	if math.IsNaN(def.UnitsPerBase) || math.IsInf(def.UnitsPerBase, 0) || def.UnitsPerBase <= 0 {
		return nil, NewError(KindInvalidArgument, "unit %q: units per base must be a positive finite number, got %v", symbol, def.UnitsPerBase)
	}

	base := strings.TrimSpace(def.Base)
	if base == symbol && def.UnitsPerBase != 1 {
		return nil, NewError(KindInvalidArgument, "base unit %q must have units per base 1, got %v", symbol, def.UnitsPerBase)
	}

	sci := strings.TrimSpace(def.ScientificSymbol)
	if sci == "" {
		sci = symbol
	}

	u := &Unit{
		name:             name,
		symbol:           symbol,
		scientificSymbol: sci,
		unitOf:           def.UnitOf,
		unitsPerBase:     def.UnitsPerBase,
		base:             base,
		si:               def.SI,
	}
	if len(def.Formulas) > 0 {
		u.formulas = make(map[string]FormulaID, len(def.Formulas))
		for target, id := range def.Formulas {
			u.formulas[target] = id
		}
	}
	return u, nil
}

// MustNewUnit 与 NewUnit 相同，但定义非法时 panic
// 仅用于静态目录数据
func MustNewUnit(def Definition) *Unit {
	u, err := NewUnit(def)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *Unit) Name() string             { return u.name }
func (u *Unit) Symbol() string           { return u.symbol }
func (u *Unit) ScientificSymbol() string { return u.scientificSymbol }
func (u *Unit) UnitOf() Category         { return u.unitOf }
func (u *Unit) UnitsPerBase() float64    { return u.unitsPerBase }
func (u *Unit) SIClass() SIClass         { return u.si }

// RegistryKey 返回注册表主键: unitOf + "." + symbol
func (u *Unit) RegistryKey() string {
	return RegistryKey(u.unitOf, u.symbol)
}

// RegistryKey 组合类别与符号
func RegistryKey(unitOf Category, symbol string) string {
	return string(unitOf) + "." + symbol
}

// BaseSymbol 返回配置的基准单位符号
func (u *Unit) BaseSymbol() (string, bool) {
	return u.base, u.base != ""
}

// BaseKey 返回基准单位的注册表主键
func (u *Unit) BaseKey() (string, bool) {
	if u.base == "" {
		return "", false
	}
	return RegistryKey(u.unitOf, u.base), true
}

// IsBase 是否为本类别的基准单位 (基准引用指向自身)
func (u *Unit) IsBase() bool {
	return u.base == u.symbol
}

// HasFormulas 是否配置了自定义公式表
func (u *Unit) HasFormulas() bool {
	return len(u.formulas) > 0
}

// FormulaIDFor 查找换算到 target 时使用的公式
// - 未配置公式表: 返回 ("", false, nil)，调用方回退到比例换算
// - 有公式表但缺少 target: BadUnit (目录编写缺陷)
func (u *Unit) FormulaIDFor(target *Unit) (FormulaID, bool, error) {
	if len(u.formulas) == 0 {
		return "", false, nil
	}
	id, ok := u.formulas[target.symbol]
	if !ok {
		return "", false, NewError(KindBadUnit, "no formula for converting %s to %s", u.RegistryKey(), target.RegistryKey())
	}
	return id, true, nil
}

// IsSiUnit implements ports.SIClassifier.
func (u *Unit) IsSiUnit() bool { return u.si.Has(SIUnit) }

// IsMultipleSiUnit implements ports.SIClassifier.
func (u *Unit) IsMultipleSiUnit() bool { return u.si.Has(SIMultiple) }

// IsSubmultipleSiUnit implements ports.SIClassifier.
func (u *Unit) IsSubmultipleSiUnit() bool { return u.si.Has(SISubmultiple) }

// Definition 返回数据记录副本，用于基于现有单位构造替换版本
func (u *Unit) Definition() Definition {
	def := Definition{
		Name:             u.name,
		Symbol:           u.symbol,
		ScientificSymbol: u.scientificSymbol,
		UnitOf:           u.unitOf,
		UnitsPerBase:     u.unitsPerBase,
		Base:             u.base,
		SI:               u.si,
	}
	if len(u.formulas) > 0 {
		def.Formulas = make(map[string]FormulaID, len(u.formulas))
		for k, v := range u.formulas {
			def.Formulas[k] = v
		}
	}
	return def
}

// Same 判断两个单位是否指向同一个注册表主键
func (u *Unit) Same(other *Unit) bool {
	return other != nil && u.unitOf == other.unitOf && u.symbol == other.symbol
}

func (u *Unit) String() string {
	return u.RegistryKey()
}
