package catalog

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/unit"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/services"
	"github.com/renjie/prism-units/pkg/core/services/formulas"
)

// entry 目录条目
// per = 多少个本单位等于 1 个基准单位 (unitsPerBase)
type entry struct {
	name   string
	symbol string
	per    float64
	si     domain.SIClass
	sci    string
}

const (
	siBase = domain.SIUnit
	siMul  = domain.SIUnit | domain.SIMultiple
	siSub  = domain.SIUnit | domain.SISubmultiple
)

func group(c domain.Category, base string, entries ...entry) []domain.Definition {
	defs := make([]domain.Definition, 0, len(entries))
	for _, e := range entries {
		defs = append(defs, domain.Definition{
			Name:             e.name,
			Symbol:           e.symbol,
			ScientificSymbol: e.sci,
			UnitOf:           c,
			UnitsPerBase:     e.per,
			Base:             base,
			SI:               e.si,
		})
	}
	return defs
}

var (
	defaultsOnce sync.Once
	defaultDefs  []domain.Definition
)

// Defaults 返回内置单位目录的定义 (副本)
func Defaults() []domain.Definition {
	defaultsOnce.Do(func() {
		defaultDefs = buildDefaults()
	})
	out := make([]domain.Definition, len(defaultDefs))
	for i, def := range defaultDefs {
		if def.Formulas != nil {
			table := make(map[string]domain.FormulaID, len(def.Formulas))
			for k, v := range def.Formulas {
				table[k] = v
			}
			def.Formulas = table
		}
		out[i] = def
	}
	return out
}

// Units 构造内置目录中的全部单位
func Units() []*domain.Unit {
	defs := Defaults()
	units := make([]*domain.Unit, 0, len(defs))
	for _, def := range defs {
		units = append(units, domain.MustNewUnit(def))
	}
	return units
}

// NewDefaultRegistry 创建装载内置目录的注册表
func NewDefaultRegistry(opts ...services.RegistryOption) *services.Registry {
	return services.NewRegistry(append([]services.RegistryOption{services.WithUnits(Units()...)}, opts...)...)
}

func buildDefaults() []domain.Definition {
	var defs []domain.Definition

	defs = append(defs, group(domain.CategoryLength, "m",
		entry{name: "metre", symbol: "m", per: 1, si: siBase},
		entry{name: "kilometre", symbol: "km", per: 1 / unit.Kilo, si: siMul},
		entry{name: "decimetre", symbol: "dm", per: 1 / unit.Deci, si: siSub},
		entry{name: "centimetre", symbol: "cm", per: 1 / unit.Centi, si: siSub},
		entry{name: "millimetre", symbol: "mm", per: 1 / unit.Milli, si: siSub},
		entry{name: "micrometre", symbol: "μm", per: 1 / unit.Micro, si: siSub},
		entry{name: "nanometre", symbol: "nm", per: 1 / unit.Nano, si: siSub},
		entry{name: "picometre", symbol: "pm", per: 1 / unit.Pico, si: siSub},
		entry{name: "ångström", symbol: "Å", per: 1e10},
		entry{name: "inch", symbol: "in", per: 1 / 0.0254},
		entry{name: "foot", symbol: "ft", per: 1 / 0.3048},
		entry{name: "yard", symbol: "yd", per: 1 / 0.9144},
		entry{name: "mile", symbol: "mi", per: 1 / 1609.344},
		entry{name: "nautical mile", symbol: "nmi", per: 1.0 / 1852},
		entry{name: "astronomical unit", symbol: "au", per: 1 / 149597870700.0},
		entry{name: "light year", symbol: "ly", per: 1 / 9460730472580800.0},
		entry{name: "parsec", symbol: "pc", per: 1 / 3.0856775814913673e16},
	)...)

	defs = append(defs, group(domain.CategoryMass, "kg",
		entry{name: "kilogram", symbol: "kg", per: 1, si: siBase},
		entry{name: "gram", symbol: "g", per: unit.Kilo, si: siSub},
		entry{name: "milligram", symbol: "mg", per: unit.Mega, si: siSub},
		entry{name: "microgram", symbol: "μg", per: unit.Giga, si: siSub},
		entry{name: "tonne", symbol: "t", per: 1 / unit.Kilo},
		entry{name: "pound", symbol: "lb", per: 1 / 0.45359237},
		entry{name: "ounce", symbol: "oz", per: 1 / 0.028349523125},
		entry{name: "stone", symbol: "st", per: 1 / 6.35029318},
		entry{name: "grain", symbol: "gr", per: 1 / 64.79891e-6},
		entry{name: "carat", symbol: "ct", per: 1 / 2e-4},
	)...)

	defs = append(defs, group(domain.CategoryEnergy, "J",
		entry{name: "joule", symbol: "J", per: 1, si: siBase},
		entry{name: "millijoule", symbol: "mJ", per: 1 / unit.Milli, si: siSub},
		entry{name: "kilojoule", symbol: "kJ", per: 1 / unit.Kilo, si: siMul},
		entry{name: "megajoule", symbol: "MJ", per: 1 / unit.Mega, si: siMul},
		entry{name: "gigajoule", symbol: "GJ", per: 1 / unit.Giga, si: siMul},
		entry{name: "watt hour", symbol: "Wh", per: 1 / 3600.0},
		entry{name: "kilowatt hour", symbol: "kWh", per: 1 / 3.6e6},
		entry{name: "calorie", symbol: "cal", per: 1 / 4.184},
		entry{name: "kilocalorie", symbol: "kcal", per: 1 / 4184.0},
		entry{name: "electronvolt", symbol: "eV", per: 1 / 1.602176634e-19},
		entry{name: "british thermal unit", symbol: "BTU", per: 1 / 1055.05585262},
		entry{name: "erg", symbol: "erg", per: 1e7},
	)...)

	defs = append(defs, temperatureDefinitions()...)

	defs = append(defs, group(domain.CategoryTime, "s",
		entry{name: "second", symbol: "s", per: 1, si: siBase},
		entry{name: "millisecond", symbol: "ms", per: 1 / unit.Milli, si: siSub},
		entry{name: "microsecond", symbol: "μs", per: 1 / unit.Micro, si: siSub},
		entry{name: "nanosecond", symbol: "ns", per: 1 / unit.Nano, si: siSub},
		entry{name: "minute", symbol: "min", per: 1 / 60.0},
		entry{name: "hour", symbol: "h", per: 1 / 3600.0},
		entry{name: "day", symbol: "d", per: 1 / 86400.0},
		entry{name: "week", symbol: "wk", per: 1 / 604800.0},
		entry{name: "julian year", symbol: "yr", per: 1 / 31557600.0},
	)...)

	defs = append(defs, group(domain.CategoryArea, "m²",
		entry{name: "square metre", symbol: "m²", per: 1, si: siBase, sci: "m^2"},
		entry{name: "square kilometre", symbol: "km²", per: 1 / (unit.Kilo * unit.Kilo), si: siMul, sci: "km^2"},
		entry{name: "square centimetre", symbol: "cm²", per: 1 / (unit.Centi * unit.Centi), si: siSub, sci: "cm^2"},
		entry{name: "square millimetre", symbol: "mm²", per: 1 / (unit.Milli * unit.Milli), si: siSub, sci: "mm^2"},
		entry{name: "hectare", symbol: "ha", per: 1e-4},
		entry{name: "are", symbol: "a", per: 1e-2},
		entry{name: "acre", symbol: "ac", per: 1 / 4046.8564224},
		entry{name: "square foot", symbol: "ft²", per: 1 / 0.09290304, sci: "ft^2"},
		entry{name: "square inch", symbol: "in²", per: 1 / 0.00064516, sci: "in^2"},
		entry{name: "square mile", symbol: "mi²", per: 1 / 2589988.110336, sci: "mi^2"},
		entry{name: "barn", symbol: "b", per: 1e28},
	)...)

	defs = append(defs, group(domain.CategoryVolume, "m³",
		entry{name: "cubic metre", symbol: "m³", per: 1, si: siBase, sci: "m^3"},
		entry{name: "cubic centimetre", symbol: "cm³", per: 1 / (unit.Centi * unit.Centi * unit.Centi), si: siSub, sci: "cm^3"},
		entry{name: "litre", symbol: "L", per: unit.Kilo},
		entry{name: "millilitre", symbol: "mL", per: unit.Mega},
		entry{name: "us gallon", symbol: "gal", per: 1 / 3.785411784e-3},
		entry{name: "us quart", symbol: "qt", per: 1 / 9.46352946e-4},
		entry{name: "us pint", symbol: "pt", per: 1 / 4.73176473e-4},
		entry{name: "us fluid ounce", symbol: "fl oz", per: 1 / 2.95735295625e-5},
		entry{name: "cubic foot", symbol: "ft³", per: 1 / 0.028316846592, sci: "ft^3"},
		entry{name: "cubic inch", symbol: "in³", per: 1 / 1.6387064e-5, sci: "in^3"},
	)...)

	defs = append(defs, group(domain.CategorySpeed, "m/s",
		entry{name: "metre per second", symbol: "m/s", per: 1, si: siBase, sci: "m s^-1"},
		entry{name: "kilometre per hour", symbol: "km/h", per: 3.6},
		entry{name: "mile per hour", symbol: "mph", per: 1 / 0.44704},
		entry{name: "knot", symbol: "kn", per: 3600.0 / 1852},
		entry{name: "foot per second", symbol: "ft/s", per: 1 / 0.3048},
	)...)

	defs = append(defs, group(domain.CategoryPressure, "Pa",
		entry{name: "pascal", symbol: "Pa", per: 1, si: siBase},
		entry{name: "hectopascal", symbol: "hPa", per: 1 / unit.Hecto, si: siMul},
		entry{name: "kilopascal", symbol: "kPa", per: 1 / unit.Kilo, si: siMul},
		entry{name: "megapascal", symbol: "MPa", per: 1 / unit.Mega, si: siMul},
		entry{name: "bar", symbol: "bar", per: 1e-5},
		entry{name: "millibar", symbol: "mbar", per: 1e-2},
		entry{name: "standard atmosphere", symbol: "atm", per: 1 / 101325.0},
		entry{name: "pound per square inch", symbol: "psi", per: 1 / 6894.757293168361},
		entry{name: "millimetre of mercury", symbol: "mmHg", per: 1 / 133.322387415},
		entry{name: "torr", symbol: "Torr", per: 760 / 101325.0},
	)...)

	defs = append(defs, group(domain.CategoryPower, "W",
		entry{name: "watt", symbol: "W", per: 1, si: siBase},
		entry{name: "milliwatt", symbol: "mW", per: 1 / unit.Milli, si: siSub},
		entry{name: "kilowatt", symbol: "kW", per: 1 / unit.Kilo, si: siMul},
		entry{name: "megawatt", symbol: "MW", per: 1 / unit.Mega, si: siMul},
		entry{name: "mechanical horsepower", symbol: "hp", per: 1 / 745.69987158227022},
	)...)

	defs = append(defs, group(domain.CategoryFrequency, "Hz",
		entry{name: "hertz", symbol: "Hz", per: 1, si: siBase},
		entry{name: "kilohertz", symbol: "kHz", per: 1 / unit.Kilo, si: siMul},
		entry{name: "megahertz", symbol: "MHz", per: 1 / unit.Mega, si: siMul},
		entry{name: "gigahertz", symbol: "GHz", per: 1 / unit.Giga, si: siMul},
		entry{name: "revolutions per minute", symbol: "rpm", per: 60},
	)...)

	defs = append(defs, group(domain.CategoryPlaneAngle, "rad",
		entry{name: "radian", symbol: "rad", per: 1, si: siBase},
		entry{name: "milliradian", symbol: "mrad", per: 1 / unit.Milli, si: siSub},
		entry{name: "degree", symbol: "deg", per: 180 / math.Pi, sci: "°"},
		entry{name: "gradian", symbol: "grad", per: 200 / math.Pi},
		entry{name: "arcminute", symbol: "arcmin", per: 10800 / math.Pi, sci: "′"},
		entry{name: "arcsecond", symbol: "arcsec", per: 648000 / math.Pi, sci: "″"},
		entry{name: "turn", symbol: "tr", per: 1 / (2 * math.Pi)},
	)...)

	defs = append(defs, group(domain.CategoryForce, "N",
		entry{name: "newton", symbol: "N", per: 1, si: siBase},
		entry{name: "millinewton", symbol: "mN", per: 1 / unit.Milli, si: siSub},
		entry{name: "kilonewton", symbol: "kN", per: 1 / unit.Kilo, si: siMul},
		entry{name: "dyne", symbol: "dyn", per: 1e5},
		entry{name: "pound force", symbol: "lbf", per: 1 / 4.4482216152605},
		entry{name: "kilogram force", symbol: "kgf", per: 1 / 9.80665},
	)...)

	defs = append(defs, group(domain.CategoryDataStorage, "B",
		entry{name: "byte", symbol: "B", per: 1},
		entry{name: "bit", symbol: "b", per: 8},
		entry{name: "kilobyte", symbol: "kB", per: 1 / 1e3},
		entry{name: "megabyte", symbol: "MB", per: 1 / 1e6},
		entry{name: "gigabyte", symbol: "GB", per: 1 / 1e9},
		entry{name: "terabyte", symbol: "TB", per: 1 / 1e12},
		entry{name: "kibibyte", symbol: "KiB", per: 1.0 / (1 << 10)},
		entry{name: "mebibyte", symbol: "MiB", per: 1.0 / (1 << 20)},
		entry{name: "gibibyte", symbol: "GiB", per: 1.0 / (1 << 30)},
		entry{name: "tebibyte", symbol: "TiB", per: 1.0 / (1 << 40)},
	)...)

	return defs
}

// temperatureDefinitions 温标之间不是比例关系，每个温标携带到其他所有温标的公式表
// unitsPerBase 不参与换算，统一为 1
func temperatureDefinitions() []domain.Definition {
	scales := []entry{
		{name: "kelvin", symbol: formulas.SymbolKelvin, per: 1, si: siBase},
		{name: "degree celsius", symbol: formulas.SymbolCelsius, per: 1, si: siBase},
		{name: "degree fahrenheit", symbol: formulas.SymbolFahrenheit, per: 1},
		{name: "degree rankine", symbol: formulas.SymbolRankine, per: 1},
		{name: "degree delisle", symbol: formulas.SymbolDelisle, per: 1},
		{name: "degree newton", symbol: formulas.SymbolNewton, per: 1},
		{name: "degree réaumur", symbol: formulas.SymbolReaumur, per: 1},
		{name: "degree rømer", symbol: formulas.SymbolRomer, per: 1},
	}

	defs := group(domain.CategoryTemperature, formulas.SymbolKelvin, scales...)
	for i := range defs {
		table := make(map[string]domain.FormulaID, len(scales)-1)
		for _, other := range scales {
			if other.symbol == defs[i].Symbol {
				continue
			}
			id, _ := formulas.TemperatureFormulaFor(other.symbol)
			table[other.symbol] = id
		}
		defs[i].Formulas = table
	}
	return defs
}
