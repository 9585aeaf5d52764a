package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renjie/prism-units/pkg/adapters/catalog"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	r := catalog.NewDefaultRegistry()

	require.NoError(t, r.Validate())
	assert.Equal(t, len(catalog.Defaults()), r.Len(), "default symbols are unique per category")
	assert.Len(t, r.Categories(), 14)
}

func TestDefaultBaseUnits(t *testing.T) {
	r := catalog.NewDefaultRegistry()

	want := map[domain.Category]string{
		domain.CategoryLength:      "m",
		domain.CategoryMass:        "kg",
		domain.CategoryEnergy:      "J",
		domain.CategoryTemperature: "K",
		domain.CategoryTime:        "s",
		domain.CategoryArea:        "m²",
		domain.CategoryVolume:      "m³",
		domain.CategorySpeed:       "m/s",
		domain.CategoryPressure:    "Pa",
		domain.CategoryPower:       "W",
		domain.CategoryFrequency:   "Hz",
		domain.CategoryPlaneAngle:  "rad",
		domain.CategoryForce:       "N",
		domain.CategoryDataStorage: "B",
	}
	for c, symbol := range want {
		bases := r.ListUnits(ports.ByCategory(c), ports.BaseUnits())
		require.Len(t, bases, 1, c)
		assert.Equal(t, symbol, bases[0].Symbol(), c)
	}
}

func TestDefaultTemperatureFormulaTables(t *testing.T) {
	r := catalog.NewDefaultRegistry()
	temps := r.ListUnits(ports.ByCategory(domain.CategoryTemperature))
	require.Len(t, temps, 8)

	for _, from := range temps {
		for _, to := range temps {
			if from.Same(to) {
				continue
			}
			_, ok, err := from.FormulaIDFor(to)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.True(t, ok)
		}
	}
}

func TestDefaultsReturnsCopies(t *testing.T) {
	defs := catalog.Defaults()
	for i := range defs {
		if defs[i].Formulas != nil {
			defs[i].Formulas["K"] = "tampered"
		}
	}

	for _, def := range catalog.Defaults() {
		for _, id := range def.Formulas {
			assert.NotEqual(t, domain.FormulaID("tampered"), id)
		}
	}
}

func TestDefaultSIClasses(t *testing.T) {
	r := catalog.NewDefaultRegistry()

	km, err := r.GetUnit("length.km")
	require.NoError(t, err)
	assert.True(t, km.IsSiUnit())
	assert.True(t, km.IsMultipleSiUnit())

	mg, err := r.GetUnit("mass.mg")
	require.NoError(t, err)
	assert.True(t, mg.IsSubmultipleSiUnit())

	mile, err := r.GetUnit("length.mi")
	require.NoError(t, err)
	assert.False(t, mile.IsSiUnit())
}
