package services

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// Registry 内存单位注册表
// 以 registryKey 为主键，保留插入顺序；读写由 RWMutex 保护
type Registry struct {
	mu     sync.RWMutex
	units  map[string]*domain.Unit
	order  []string
	logger *slog.Logger
}

// RegistryOption 定义注册表配置选项
type RegistryOption func(*Registry)

// WithUnits 设置初始单位目录
func WithUnits(units ...*domain.Unit) RegistryOption {
	return func(r *Registry) {
		r.addLocked(units...)
	}
}

// WithRegistryLogger 设置日志 (默认 slog.Default())
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry 创建注册表
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		units:  make(map[string]*domain.Unit),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.UnitRegistry = (*Registry)(nil)

// AddUnit 插入或覆盖；覆盖时保留原有位置
func (r *Registry) AddUnit(u *domain.Unit) {
	r.AddUnits(u)
}

// AddUnits 按参数顺序批量插入
func (r *Registry) AddUnits(units ...*domain.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(units...)
}

func (r *Registry) addLocked(units ...*domain.Unit) {
	for _, u := range units {
		if u == nil {
			continue
		}
		key := u.RegistryKey()
		if _, exists := r.units[key]; exists {
			r.logger.Debug("unit overridden", "key", key, "name", u.Name())
		} else {
			r.order = append(r.order, key)
		}
		r.units[key] = u
	}
}

// RemoveUnit 按主键或裸符号删除
// 不存在时返回 UnitNotFound；裸符号在多个类别中注册时返回 AmbiguousUnit
func (r *Registry) RemoveUnit(symbolOrKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := symbolOrKey
	if _, ok := r.units[key]; !ok {
		matches := r.keysForSymbolLocked(symbolOrKey)
		switch len(matches) {
		case 0:
			return domain.NewError(domain.KindUnitNotFound, "cannot remove %q: not registered", symbolOrKey)
		case 1:
			key = matches[0]
		default:
			return domain.NewError(domain.KindAmbiguousUnit, "cannot remove %q: registered as %s", symbolOrKey, strings.Join(matches, ", "))
		}
	}

	delete(r.units, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// LoadUnits 替换整个目录
func (r *Registry) LoadUnits(units ...*domain.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units = make(map[string]*domain.Unit, len(units))
	r.order = nil
	r.addLocked(units...)
}

// GetUnit 精确主键查找
func (r *Registry) GetUnit(key string) (*domain.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.units[key]; ok {
		return u, nil
	}
	return nil, domain.NewError(domain.KindUnitNotFound, "unit %q is not registered", key)
}

// GetUnitOfMeasureFor 解析单位
// - unitOf 非空: 精确主键查找
// - unitOf 为空: 按裸符号扫描。唯一匹配即返回；多个类别匹配时返回 AmbiguousUnit
//   (列出排序后的候选主键)，不做隐式选择。裸符号无匹配但本身是已注册主键时按主键返回。
func (r *Registry) GetUnitOfMeasureFor(symbol string, unitOf domain.Category) (*domain.Unit, error) {
	if unitOf != "" {
		return r.GetUnit(domain.RegistryKey(unitOf, symbol))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.keysForSymbolLocked(symbol)
	switch len(matches) {
	case 1:
		return r.units[matches[0]], nil
	case 0:
		if u, ok := r.units[symbol]; ok {
			return u, nil
		}
		return nil, domain.NewError(domain.KindUnitNotFound, "no unit with symbol %q", symbol)
	default:
		return nil, domain.NewError(domain.KindAmbiguousUnit, "symbol %q matches %s; specify a category", symbol, strings.Join(matches, ", "))
	}
}

// keysForSymbolLocked 返回裸符号匹配的主键 (已排序)；调用方需持有锁
func (r *Registry) keysForSymbolLocked(symbol string) []string {
	var keys []string
	for _, key := range r.order {
		if r.units[key].Symbol() == symbol {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ListUnits 按插入顺序枚举，只返回满足全部筛选条件的单位
func (r *Registry) ListUnits(filters ...ports.UnitFilter) []*domain.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Unit, 0, len(r.order))
next:
	for _, key := range r.order {
		u := r.units[key]
		for _, f := range filters {
			if f != nil && !f(u) {
				continue next
			}
		}
		out = append(out, u)
	}
	return out
}

// IsRegistered 主键是否已注册
func (r *Registry) IsRegistered(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.units[key]
	return ok
}

// Len 返回已注册单位数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// Categories 返回已注册的类别 (排序)
func (r *Registry) Categories() []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.Category]struct{})
	var out []domain.Category
	for _, key := range r.order {
		c := r.units[key].UnitOf()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BaseOf 返回 u 的基准单位 (从注册表解析，覆盖后的版本优先)
// u 未配置基准引用时返回 (nil, nil)
func (r *Registry) BaseOf(u *domain.Unit) (*domain.Unit, error) {
	key, ok := u.BaseKey()
	if !ok {
		return nil, nil
	}
	base, err := r.GetUnit(key)
	if err != nil {
		return nil, domain.WrapError(domain.KindUnitNotFound, err, "base of %s", u)
	}
	return base, nil
}

// BaseUnitsOf 返回基准单位的 unitsPerBase
func (r *Registry) BaseUnitsOf(u *domain.Unit) (float64, bool, error) {
	base, err := r.BaseOf(u)
	if err != nil {
		return 0, false, err
	}
	if base == nil {
		return 0, false, nil
	}
	return base.UnitsPerBase(), true, nil
}

// Validate 检查目录不变量:
// 1. 每个类别恰好有一个基准单位 (基准引用指向自身, unitsPerBase == 1)
// 2. 所有基准引用都能在同类别内解析，且指向该基准单位
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bases := make(map[domain.Category][]string)
	var categories []domain.Category
	for _, key := range r.order {
		u := r.units[key]
		if _, ok := bases[u.UnitOf()]; !ok {
			bases[u.UnitOf()] = nil
			categories = append(categories, u.UnitOf())
		}
		if u.IsBase() {
			bases[u.UnitOf()] = append(bases[u.UnitOf()], key)
		}
	}

	var errs []error
	for _, c := range categories {
		if n := len(bases[c]); n != 1 {
			errs = append(errs, domain.NewError(domain.KindBadUnit, "category %q has %d base units %v, want exactly 1", c, n, bases[c]))
		}
	}

	for _, key := range r.order {
		u := r.units[key]
		baseKey, ok := u.BaseKey()
		if !ok {
			continue
		}
		base, found := r.units[baseKey]
		if !found {
			errs = append(errs, domain.NewError(domain.KindBadUnit, "%s references missing base %s", key, baseKey))
			continue
		}
		if !base.IsBase() {
			errs = append(errs, domain.NewError(domain.KindBadUnit, "%s references %s which is not a base unit", key, baseKey))
		}
	}
	return errors.Join(errs...)
}

// Clone 返回目录快照，供需要隔离并发修改的调用方使用
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Registry{
		units:  make(map[string]*domain.Unit, len(r.units)),
		order:  append([]string(nil), r.order...),
		logger: r.logger,
	}
	for k, u := range r.units {
		c.units[k] = u
	}
	return c
}
