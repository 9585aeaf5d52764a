// Package siunit 换算结果与 gonum 量纲值之间的桥接 (经由类别基准单位)
package siunit

import (
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services"

	"gonum.org/v1/gonum/unit"
)

var categoryDimensions = map[domain.Category]unit.Dimensions{
	domain.CategoryLength:      {unit.LengthDim: 1},
	domain.CategoryMass:        {unit.MassDim: 1},
	domain.CategoryTime:        {unit.TimeDim: 1},
	domain.CategoryTemperature: {unit.TemperatureDim: 1},
	domain.CategoryEnergy:      {unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2},
	domain.CategoryArea:        {unit.LengthDim: 2},
	domain.CategoryVolume:      {unit.LengthDim: 3},
	domain.CategorySpeed:       {unit.LengthDim: 1, unit.TimeDim: -1},
	domain.CategoryPressure:    {unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2},
	domain.CategoryPower:       {unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3},
	domain.CategoryFrequency:   {unit.TimeDim: -1},
	domain.CategoryPlaneAngle:  {unit.AngleDim: 1},
	domain.CategoryForce:       {unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2},
}

// Dimensions returns the SI dimensions of a category's base unit.
func Dimensions(c domain.Category) (unit.Dimensions, bool) {
	d, ok := categoryDimensions[c]
	if !ok {
		return nil, false
	}
	out := make(unit.Dimensions, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out, true
}

// CategoryOf finds the category whose dimensions match u.
func CategoryOf(u unit.Uniter) (domain.Category, bool) {
	dims := u.Unit().Dimensions()
	for c, d := range categoryDimensions {
		if sameDimensions(dims, d) {
			return c, true
		}
	}
	return "", false
}

// ToGonum converts quantity (in unitOf.symbol) into the SI base unit of its
// category and returns it as a gonum dimensioned value.
func ToGonum(conv *services.UnitConverter, quantity float64, unitOf domain.Category, symbol string) (*unit.Unit, error) {
	src, err := conv.Registry().GetUnitOfMeasureFor(symbol, unitOf)
	if err != nil {
		return nil, err
	}
	dims, ok := Dimensions(src.UnitOf())
	if !ok {
		return nil, domain.NewError(domain.KindBadUnit, "category %q has no SI dimensions", src.UnitOf())
	}
	base, err := conv.Registry().BaseOf(src)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, domain.NewError(domain.KindBadUnit, "%s has no base unit", src)
	}

	v, err := conv.Convert(quantity).FromUnitOf(src.UnitOf(), src.Symbol()).To(base.Symbol())
	if err != nil {
		return nil, err
	}
	return unit.New(v, dims), nil
}

// FromGonum converts a gonum dimensioned value into the unit named by symbol.
// The category is derived from the value's dimensions.
func FromGonum(conv *services.UnitConverter, u unit.Uniter, symbol string) (float64, error) {
	c, ok := CategoryOf(u)
	if !ok {
		return 0, domain.NewError(domain.KindBadUnit, "no category for dimensions %v", u.Unit().Dimensions())
	}
	bases := conv.Registry().ListUnits(ports.ByCategory(c), ports.BaseUnits())
	if len(bases) == 0 {
		return 0, domain.NewError(domain.KindUnitNotFound, "no base unit registered for %q", c)
	}
	return conv.Convert(u.Unit().Value()).FromUnitOf(c, bases[0].Symbol()).To(symbol)
}

func sameDimensions(a, b unit.Dimensions) bool {
	count := func(d unit.Dimensions) int {
		n := 0
		for _, v := range d {
			if v != 0 {
				n++
			}
		}
		return n
	}
	if count(a) != count(b) {
		return false
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}
