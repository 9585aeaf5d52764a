package ports

import "github.com/renjie/prism-units/pkg/core/domain"

// SIClassifier SI 分类能力
// 由展示/筛选逻辑使用，换算核心本身不依赖
type SIClassifier interface {
	IsSiUnit() bool
	IsMultipleSiUnit() bool
	IsSubmultipleSiUnit() bool
}

// UnitFilter 单位筛选条件，ListUnits 只返回全部条件都满足的单位
type UnitFilter func(u *domain.Unit) bool

// ByCategory 按类别筛选
func ByCategory(c domain.Category) UnitFilter {
	return func(u *domain.Unit) bool { return u.UnitOf() == c }
}

// SIUnits 只保留 SI 单位
func SIUnits() UnitFilter {
	return func(u *domain.Unit) bool { return u.IsSiUnit() }
}

// SIMultiples 只保留 SI 倍数单位
func SIMultiples() UnitFilter {
	return func(u *domain.Unit) bool { return u.IsMultipleSiUnit() }
}

// SISubmultiples 只保留 SI 分数单位
func SISubmultiples() UnitFilter {
	return func(u *domain.Unit) bool { return u.IsSubmultipleSiUnit() }
}

// BaseUnits 只保留各类别的基准单位
func BaseUnits() UnitFilter {
	return func(u *domain.Unit) bool { return u.IsBase() }
}

// 编译期检查: *domain.Unit 具备 SI 分类能力
var _ SIClassifier = (*domain.Unit)(nil)
