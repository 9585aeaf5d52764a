package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renjie/prism-units/pkg/adapters/catalog"
)

func TestLookup(t *testing.T) {
	tree := map[string]any{
		"catalog": map[string]any{
			"units": []any{
				map[string]any{"symbol": "fur"},
				map[string]any{"symbol": "ch"},
			},
		},
	}

	v, ok := catalog.Lookup(tree, "catalog.units.1.symbol")
	assert.True(t, ok)
	assert.Equal(t, "ch", v)

	v, ok = catalog.Lookup(tree, "")
	assert.True(t, ok)
	assert.Equal(t, tree, v)

	for _, path := range []string{"catalog.missing", "catalog.units.2", "catalog.units.x", "catalog.units.0.symbol.deeper", "catalog.units.-1"} {
		_, ok := catalog.Lookup(tree, path)
		assert.False(t, ok, path)
	}
}
