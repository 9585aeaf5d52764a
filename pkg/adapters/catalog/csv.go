package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/renjie/prism-units/pkg/core/domain"
)

// DecodeCSV 逐行读取 CSV 单位目录
// 必填列: name, symbol, unit_of, units_per_base
// 可选列: scientific_symbol, base, si ("si|multiple"), formulas ("°F=temperature.to_fahrenheit|K=...")
// 坏行计入 LoadResult 并跳过；只有表头错误或读取失败才返回 error
func DecodeCSV(r io.Reader) ([]Record, *LoadResult, error) {
	reader := csv.NewReader(r)
	// 允许变长字段，避免因某些行缺少非必填字段报错
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	result := &LoadResult{}

	// 1. Read Header
	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, result, nil
		}
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if err := validateCsvHeaders(headerMap); err != nil {
		return nil, nil, err
	}

	// 2. Read Records
	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		result.Total++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("csv read error at line %d: %v", result.Total+1, err)) // +1 for header
			continue
		}

		rec, err := parseCsvRecord(row, headerMap)
		if err != nil {
			result.Failed++
			msg := fmt.Sprintf("line %d: %v", result.Total+1, err)
			result.Errors = append(result.Errors, msg)
			slog.Warn("skipping catalog row", "error", msg)
			continue
		}
		records = append(records, rec)
		result.Success++
	}
	return records, result, nil
}

func validateCsvHeaders(headerMap map[string]int) error {
	required := []string{"name", "symbol", "unit_of", "units_per_base"}
	for _, req := range required {
		if _, ok := headerMap[req]; !ok {
			return fmt.Errorf("missing required csv header: %s", req)
		}
	}
	return nil
}

func parseCsvRecord(row []string, headerMap map[string]int) (Record, error) {
	// Helper to get value gracefully
	get := func(col string) string {
		if idx, ok := headerMap[col]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	symbol := get("symbol")
	if symbol == "" {
		return Record{}, fmt.Errorf("symbol is empty")
	}

	perStr := get("units_per_base")
	per, err := strconv.ParseFloat(perStr, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid units_per_base for %q: %s", symbol, perStr)
	}

	rec := Record{
		Name:             get("name"),
		Symbol:           symbol,
		ScientificSymbol: get("scientific_symbol"),
		UnitOf:           get("unit_of"),
		UnitsPerBase:     per,
		Base:             get("base"),
	}

	if si := get("si"); si != "" {
		rec.SI = strings.Split(si, "|")
	}

	if fs := get("formulas"); fs != "" {
		rec.Formulas = make(map[string]string)
		for _, pair := range strings.Split(fs, "|") {
			target, id, ok := strings.Cut(pair, "=")
			if !ok || strings.TrimSpace(target) == "" || strings.TrimSpace(id) == "" {
				return Record{}, fmt.Errorf("invalid formula entry %q for %q", pair, symbol)
			}
			rec.Formulas[strings.TrimSpace(target)] = strings.TrimSpace(id)
		}
	}

	// 提前校验，坏行在这里计数而不是在 Build 时整体失败
	def, err := rec.Definition()
	if err != nil {
		return Record{}, err
	}
	if _, err := domain.NewUnit(def); err != nil {
		return Record{}, err
	}
	return rec, nil
}
