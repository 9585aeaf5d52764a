package siunit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/unit"

	"github.com/renjie/prism-units/pkg/adapters/catalog"
	"github.com/renjie/prism-units/pkg/adapters/siunit"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/services"
)

func TestToGonum(t *testing.T) {
	conv := services.NewUnitConverter(catalog.NewDefaultRegistry(), nil)

	v, err := siunit.ToGonum(conv, 5, domain.CategoryLength, "km")
	require.NoError(t, err)
	assert.InEpsilon(t, 5000.0, v.Value(), 1e-12)
	assert.True(t, unit.DimensionsMatch(v, unit.Length(1)))

	v, err = siunit.ToGonum(conv, 1, domain.CategoryEnergy, "kWh")
	require.NoError(t, err)
	assert.True(t, unit.DimensionsMatch(v, unit.Energy(1)))

	// Temperature is wrapped in kelvin
	v, err = siunit.ToGonum(conv, 0, domain.CategoryTemperature, "°C")
	require.NoError(t, err)
	assert.InDelta(t, 273.15, v.Value(), 1e-9)
}

func TestToGonumRejectsNonSICategories(t *testing.T) {
	conv := services.NewUnitConverter(catalog.NewDefaultRegistry(), nil)

	_, err := siunit.ToGonum(conv, 1, domain.CategoryDataStorage, "GB")
	assert.ErrorIs(t, err, domain.ErrBadUnit)

	_, err = siunit.ToGonum(conv, 1, domain.CategoryLength, "furlong")
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestFromGonum(t *testing.T) {
	conv := services.NewUnitConverter(catalog.NewDefaultRegistry(), nil)

	got, err := siunit.FromGonum(conv, unit.Length(1609.344), "mi")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, got, 1e-12)

	got, err = siunit.FromGonum(conv, unit.Pressure(101325), "atm")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, got, 1e-12)

	_, err = siunit.FromGonum(conv, unit.New(1, unit.Dimensions{unit.LuminousIntensityDim: 1}), "cd")
	assert.ErrorIs(t, err, domain.ErrBadUnit)
}

func TestCategoryOf(t *testing.T) {
	c, ok := siunit.CategoryOf(unit.Force(3))
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryForce, c)

	dims, ok := siunit.Dimensions(domain.CategorySpeed)
	require.True(t, ok)
	assert.Equal(t, 1, dims[unit.LengthDim])
	assert.Equal(t, -1, dims[unit.TimeDim])

	_, ok = siunit.Dimensions(domain.CategoryDataStorage)
	assert.False(t, ok)
}
