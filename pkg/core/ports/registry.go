package ports

import "github.com/renjie/prism-units/pkg/core/domain"

// UnitRegistry 单位注册表接口
// 以 registryKey (unitOf.symbol) 为主键，同一主键最多一个单位
type UnitRegistry interface {
	// AddUnit 插入或覆盖 (按 RegistryKey)
	AddUnit(u *domain.Unit)
	// AddUnits 批量插入，顺序与参数一致
	AddUnits(units ...*domain.Unit)
	// RemoveUnit 按注册表主键或裸符号删除；不存在时返回 UnitNotFound
	RemoveUnit(symbolOrKey string) error
	// LoadUnits 替换整个目录
	LoadUnits(units ...*domain.Unit)

	// GetUnit 精确主键查找；不存在时返回 UnitNotFound
	GetUnit(key string) (*domain.Unit, error)
	// GetUnitOfMeasureFor 主要解析入口
	// unitOf 为空时按裸符号扫描，多个类别同时匹配时返回 AmbiguousUnit
	GetUnitOfMeasureFor(symbol string, unitOf domain.Category) (*domain.Unit, error)
	// ListUnits 按插入顺序枚举，可选筛选
	ListUnits(filters ...UnitFilter) []*domain.Unit
	// IsRegistered 主键是否已注册
	IsRegistered(key string) bool

	// BaseOf 返回 u 所属类别的基准单位；u 未配置基准引用时返回 (nil, nil)
	BaseOf(u *domain.Unit) (*domain.Unit, error)
	// BaseUnitsOf 返回基准单位的 unitsPerBase；ok=false 表示未配置基准引用
	BaseUnitsOf(u *domain.Unit) (units float64, ok bool, err error)
}
