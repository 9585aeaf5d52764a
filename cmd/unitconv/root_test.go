package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	out, err := run(t, "convert", "5", "km", "m")
	require.NoError(t, err)
	assert.Equal(t, "5 km = 5000 m\n", out)

	out, err = run(t, "convert", "100", "°C", "°F")
	require.NoError(t, err)
	assert.Contains(t, out, "= 212 °F")
}

func TestConvertCommandBinaryCalculator(t *testing.T) {
	out, err := run(t, "--calculator", "binary", "convert", "0.1", "m", "cm")
	require.NoError(t, err)
	assert.Equal(t, "0.1 m = 10 cm\n", out)
}

func TestConvertCommandPrecisionFromEnv(t *testing.T) {
	t.Setenv("UNITCONV_PRECISION", "2")

	out, err := run(t, "convert", "1", "mi", "km")
	require.NoError(t, err)
	assert.Equal(t, "1 mi = 1.61 km\n", out)
}

func TestConvertCommandAmbiguousSymbol(t *testing.T) {
	_, err := run(t, "convert", "1", "b", "B")
	assert.ErrorContains(t, err, "AmbiguousUnit")

	out, err := run(t, "convert", "--unit-of", "data_storage", "1", "b", "B")
	require.NoError(t, err)
	assert.Equal(t, "1 b = 0.125 B\n", out)
}

func TestConvertCommandAll(t *testing.T) {
	out, err := run(t, "convert", "1", "km")
	require.NoError(t, err)
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "metre")
	assert.NotContains(t, out, "kilometre")
}

func TestListAndCategoriesCommands(t *testing.T) {
	out, err := run(t, "list", "--unit-of", "length", "--multiples")
	require.NoError(t, err)
	assert.Contains(t, out, "length.km")
	assert.NotContains(t, out, "length.mm")

	out, err = run(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "temperature")
	assert.Contains(t, out, "data_storage")
}

func TestCatalogFlag(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
units:
  - name: furlong
    symbol: fur
    unit_of: length
    units_per_base: 0.004970969537898672
    base: m
`), 0o644))

	out, err := run(t, "--catalog", yamlPath, "--catalog-root", "units", "--precision", "3", "convert", "1", "fur", "m")
	require.NoError(t, err)
	assert.Equal(t, "1 fur = 201.168 m\n", out)

	csvPath := filepath.Join(dir, "extra.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,symbol,unit_of,units_per_base,base\nchain,ch,length,0.049709695378986715,m\n"), 0o644))

	out, err = run(t, "--catalog", csvPath, "--precision", "4", "convert", "1", "ch", "m")
	require.NoError(t, err)
	assert.Equal(t, "1 ch = 20.1168 m\n", out)
}

func TestReplaceCatalogMustStayValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: gram
  symbol: g
  unit_of: mass
  units_per_base: 1000
  base: kg
`), 0o644))

	_, err := run(t, "--catalog", path, "--replace-catalog", "categories")
	assert.ErrorContains(t, err, "invalid unit catalog")
}

func TestExportCommand(t *testing.T) {
	out, err := run(t, "export", "--unit-of", "force")
	require.NoError(t, err)
	assert.Contains(t, out, "name: newton")
	assert.NotContains(t, out, "metre")
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "--calculator", "abacus", "categories")
	assert.ErrorContains(t, err, "unknown calculator")

	_, err = run(t, "--log-level", "loud", "categories")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestBatchCommandJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"id": "r1", "quantity": 5, "from": "km", "to": "m"},
  {"id": "r2", "quantity": -300, "from": "°C", "to": "°F"},
  {"id": "r3", "quantity": 1, "from": "b", "unit_of": "data_storage", "to": "B"}
]`), 0o644))

	out, err := run(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5000")
	assert.Contains(t, out, "0.125")
	assert.Contains(t, out, "REJECTED")

	_, err = run(t, "batch", "--strict", path)
	assert.ErrorContains(t, err, "0 requests skipped, 1 rejected")
}

func TestBatchCommandCSVWithRules(t *testing.T) {
	dir := t.TempDir()
	requests := filepath.Join(dir, "requests.csv")
	require.NoError(t, os.WriteFile(requests, []byte("id,quantity,from,to\na,250,m,km\nb,,m,km\n"), 0o644))

	rulesFile := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte(`
rules:
  - id: short_length
    unit_of: length
    type: RANGE
    action: CORRECT
    enabled: true
    parameters:
      max: 100
`), 0o644))

	out, err := run(t, "batch", "--rules", rulesFile, "--rules-root", "rules", requests)
	require.NoError(t, err)
	assert.Contains(t, out, "0.1")
	assert.Contains(t, out, "CORRECTED")

	_, err = run(t, "batch", "--format", "xml", requests)
	assert.ErrorContains(t, err, "unsupported batch format")
}
