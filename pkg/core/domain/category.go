package domain

// Category 定义度量类别 (unitOf)
// 同一类别内的单位共享一个基准单位 (Base Unit)
type Category string

const (
	CategoryLength      Category = "length"
	CategoryMass        Category = "mass"
	CategoryEnergy      Category = "energy"
	CategoryTemperature Category = "temperature"
	CategoryTime        Category = "time"
	CategoryArea        Category = "area"
	CategoryVolume      Category = "volume"
	CategorySpeed       Category = "speed"
	CategoryPressure    Category = "pressure"
	CategoryPower       Category = "power"
	CategoryFrequency   Category = "frequency"
	CategoryPlaneAngle  Category = "plane_angle"
	CategoryForce       Category = "force"
	CategoryDataStorage Category = "data_storage"
)

// FormulaID 公式的符号标识
// 单位的公式表只保存标识，具体实现由 FormulaFactory 按标识构建
type FormulaID string

const (
	// FormulaRatio 默认公式: 基于 unitsPerBase 的比例换算
	FormulaRatio FormulaID = "ratio"

	// 温度公式 (非线性/仿射换算)，按目标温标区分
	FormulaToKelvin     FormulaID = "temperature.to_kelvin"
	FormulaToCelsius    FormulaID = "temperature.to_celsius"
	FormulaToFahrenheit FormulaID = "temperature.to_fahrenheit"
	FormulaToRankine    FormulaID = "temperature.to_rankine"
	FormulaToDelisle    FormulaID = "temperature.to_delisle"
	FormulaToNewton     FormulaID = "temperature.to_newton"
	FormulaToReaumur    FormulaID = "temperature.to_reaumur"
	FormulaToRomer      FormulaID = "temperature.to_romer"
)

// SIClass 单位所属的 SI 能力分组 (位集合)
type SIClass uint8

const (
	// SIUnit 属于 SI 体系 (基本单位或导出单位)
	SIUnit SIClass = 1 << iota
	// SIMultiple SI 倍数单位 (如 km, MJ)
	SIMultiple
	// SISubmultiple SI 分数单位 (如 mm, mg)
	SISubmultiple
)

// Has reports whether every bit of other is set in c.
func (c SIClass) Has(other SIClass) bool {
	return other != 0 && c&other == other
}
