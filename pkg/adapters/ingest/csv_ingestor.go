package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// CsvRequestIngestor 实现 RequestIngestor 接口
// 专门处理 CSV 格式的数据流
type CsvRequestIngestor struct {
	downstream Downstream
}

// NewCsvRequestIngestor 创建 CSV 摄入器实例
func NewCsvRequestIngestor(downstream Downstream) *CsvRequestIngestor {
	return &CsvRequestIngestor{
		downstream: downstream,
	}
}

var _ ports.RequestIngestor = (*CsvRequestIngestor)(nil)

// IngestStream 实现 RequestIngestor.IngestStream
// 逐行读取 CSV 流
func (c *CsvRequestIngestor) IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestionResult, error) {
	reader := csv.NewReader(stream)
	// 允许变长字段，避免因某些行缺少非必填字段报错
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	result := &domain.IngestionResult{}

	// 1. Read Header
	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	// Validate required columns
	if err := validateCsvHeaders(headerMap); err != nil {
		return nil, err
	}

	var buffer []domain.ConversionRequest

	// 2. Read Records
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Total++
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("csv read error at line %d: %v", result.Total+1, err)) // +1 for header
			continue
		}

		result.Total++
		req, err := c.parseRecord(record, headerMap)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", result.Total+1, err))
			continue
		}

		buffer = append(buffer, req)
		result.Success++

		if len(buffer) >= batchSize {
			if err := c.downstream(ctx, buffer); err != nil {
				return result, err
			}
			buffer = nil
		}
	}

	if len(buffer) > 0 {
		if err := c.downstream(ctx, buffer); err != nil {
			return result, err
		}
	}

	return result, nil
}

// IngestBatch 实现 RequestIngestor.IngestBatch
func (c *CsvRequestIngestor) IngestBatch(ctx context.Context, file io.Reader, format string) (*domain.IngestionResult, error) {
	if strings.ToLower(format) != "csv" {
		return nil, fmt.Errorf("unsupported format for CsvIngestor: %s", format)
	}
	return c.IngestStream(ctx, file)
}

func validateCsvHeaders(headerMap map[string]int) error {
	required := []string{"quantity", "from", "to"}
	for _, req := range required {
		if _, ok := headerMap[req]; !ok {
			return fmt.Errorf("missing required csv header: %s", req)
		}
	}
	return nil
}

func (c *CsvRequestIngestor) parseRecord(record []string, headerMap map[string]int) (domain.ConversionRequest, error) {
	// Helper to get value gracefully
	get := func(col string) string {
		if idx, ok := headerMap[col]; ok && idx < len(record) {
			return record[idx]
		}
		return ""
	}
	return newRequest(get("id"), get("quantity"), get("from"), get("unit_of"), get("to"))
}
