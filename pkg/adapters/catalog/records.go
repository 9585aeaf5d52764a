package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// Record 单位目录的外部数据记录 (YAML/JSON/CSV 解码结果)
type Record struct {
	Name             string            `json:"name"`
	Symbol           string            `json:"symbol"`
	ScientificSymbol string            `json:"scientific_symbol,omitempty"`
	UnitOf           string            `json:"unit_of"`
	UnitsPerBase     float64           `json:"units_per_base"`
	Base             string            `json:"base,omitempty"`
	Formulas         map[string]string `json:"formulas,omitempty"`
	SI               []string          `json:"si,omitempty"` // "si" / "multiple" / "submultiple"
}

// LoadResult 解码统计 (坏行计数但不中断)
type LoadResult = domain.IngestionResult

var siClassNames = map[string]domain.SIClass{
	"si":          domain.SIUnit,
	"multiple":    domain.SIMultiple,
	"submultiple": domain.SISubmultiple,
}

// Definition 将记录映射为领域定义
func (r Record) Definition() (domain.Definition, error) {
	var class domain.SIClass
	for _, name := range r.SI {
		c, ok := siClassNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return domain.Definition{}, fmt.Errorf("unit %q: unknown si class %q", r.Symbol, name)
		}
		class |= c
	}

	def := domain.Definition{
		Name:             r.Name,
		Symbol:           r.Symbol,
		ScientificSymbol: r.ScientificSymbol,
		UnitOf:           domain.Category(r.UnitOf),
		UnitsPerBase:     r.UnitsPerBase,
		Base:             r.Base,
		SI:               class,
	}
	if len(r.Formulas) > 0 {
		def.Formulas = make(map[string]domain.FormulaID, len(r.Formulas))
		for target, id := range r.Formulas {
			def.Formulas[target] = domain.FormulaID(id)
		}
	}
	return def, nil
}

// RecordOf 将单位转换回数据记录 (用于导出)
func RecordOf(u *domain.Unit) Record {
	def := u.Definition()
	r := Record{
		Name:         def.Name,
		Symbol:       def.Symbol,
		UnitOf:       string(def.UnitOf),
		UnitsPerBase: def.UnitsPerBase,
		Base:         def.Base,
	}
	if def.ScientificSymbol != def.Symbol {
		r.ScientificSymbol = def.ScientificSymbol
	}
	for _, name := range []string{"si", "multiple", "submultiple"} {
		if def.SI.Has(siClassNames[name]) {
			r.SI = append(r.SI, name)
		}
	}
	if len(def.Formulas) > 0 {
		r.Formulas = make(map[string]string, len(def.Formulas))
		for target, id := range def.Formulas {
			r.Formulas[target] = string(id)
		}
	}
	return r
}

// Build 将记录批量构造为单位；所有非法记录的错误合并返回
func Build(records []Record) ([]*domain.Unit, error) {
	units := make([]*domain.Unit, 0, len(records))
	var errs []error
	for i, r := range records {
		def, err := r.Definition()
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		u, err := domain.NewUnit(def)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		units = append(units, u)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return units, nil
}

// Load 构造记录并加入注册表 (追加/覆盖，不替换整个目录)
func Load(registry ports.UnitRegistry, records []Record) error {
	units, err := Build(records)
	if err != nil {
		return err
	}
	registry.AddUnits(units...)
	return nil
}
