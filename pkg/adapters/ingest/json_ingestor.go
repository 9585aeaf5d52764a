package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// batchSize 每次交给 downstream 的请求数
const batchSize = 100

// Downstream 接收解码后的一批请求
type Downstream func(context.Context, []domain.ConversionRequest) error

// JsonRequestIngestor 实现 RequestIngestor 接口
// 专门处理 JSON 格式的数据流
type JsonRequestIngestor struct {
	// downstream 是数据流向的下一站
	// 通常是收集请求后调用 BatchConverter.ConvertAll
	downstream Downstream
}

func NewJsonRequestIngestor(downstream Downstream) *JsonRequestIngestor {
	return &JsonRequestIngestor{
		downstream: downstream,
	}
}

var _ ports.RequestIngestor = (*JsonRequestIngestor)(nil)

// IngestStream 实现 RequestIngestor.IngestStream
// 输入可以是 JSON 数组 [...] 或单个对象 {...}
func (j *JsonRequestIngestor) IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestionResult, error) {
	// 使用 bufio.Reader 预读首字节，避免消耗 Token
	bufStream := bufio.NewReader(stream)
	head, err := peekNonSpace(bufStream)
	if err != nil {
		if err == io.EOF {
			return &domain.IngestionResult{}, nil
		}
		return nil, fmt.Errorf("failed to peek start token: %w", err)
	}

	decoder := json.NewDecoder(bufStream)
	result := &domain.IngestionResult{}

	// Case 1: JSON Array [...]
	if head == '[' {
		// Consume '['
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return j.decodeArray(ctx, decoder, result)
	}

	// Case 2: Single JSON Object {...}
	if head == '{' {
		var p rawPayload
		if err := decoder.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode single object: %w", err)
		}

		result.Total++
		req, err := p.toDomain()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("mapping error: %v", err))
			return result, nil
		}

		if err := j.downstream(ctx, []domain.ConversionRequest{req}); err != nil {
			return nil, err
		}
		result.Success++
		return result, nil
	}

	return nil, fmt.Errorf("unexpected JSON format (expected '[' or '{', got '%c')", head)
}

// IngestBatch 实现 RequestIngestor.IngestBatch
func (j *JsonRequestIngestor) IngestBatch(ctx context.Context, file io.Reader, format string) (*domain.IngestionResult, error) {
	if strings.ToLower(format) != "json" {
		return nil, fmt.Errorf("unsupported format for JsonIngestor: %s", format)
	}
	return j.IngestStream(ctx, file)
}

// --- Internal Parsing Logic ---

// rawPayload 定义接收的扁平化 JSON 结构
type rawPayload struct {
	ID       string      `json:"id"`
	Quantity json.Number `json:"quantity"` // 使用 json.Number 避免精度丢失
	From     string      `json:"from"`
	UnitOf   string      `json:"unit_of"`
	To       string      `json:"to"`
}

func (j *JsonRequestIngestor) decodeArray(ctx context.Context, decoder *json.Decoder, result *domain.IngestionResult) (*domain.IngestionResult, error) {
	var buffer []domain.ConversionRequest

	for decoder.More() {
		var p rawPayload
		if err := decoder.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode error inside array: %w", err)
		}

		result.Total++
		req, err := p.toDomain()
		if err != nil {
			// 策略：记录错误并继续
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d skipped: %v", result.Total, err))
			continue
		}

		buffer = append(buffer, req)
		result.Success++

		// Flush buffer if full
		if len(buffer) >= batchSize {
			if err := j.downstream(ctx, buffer); err != nil {
				return result, err
			}
			buffer = nil
		}
	}

	// Flush remaining
	if len(buffer) > 0 {
		if err := j.downstream(ctx, buffer); err != nil {
			return result, err
		}
	}

	// Consume closing ']'
	if _, err := decoder.Token(); err != nil {
		return result, err
	}
	return result, nil
}

// toDomain 将扁平 JSON 转换为领域对象
func (p rawPayload) toDomain() (domain.ConversionRequest, error) {
	return newRequest(p.ID, p.Quantity.String(), p.From, p.UnitOf, p.To)
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

// newRequest 校验必填字段 (数量是否合法由计算器在换算时判断)
func newRequest(id, quantity, from, unitOf, to string) (domain.ConversionRequest, error) {
	req := domain.ConversionRequest{
		ID:       strings.TrimSpace(id),
		Quantity: strings.TrimSpace(quantity),
		From:     strings.TrimSpace(from),
		UnitOf:   domain.Category(strings.TrimSpace(unitOf)),
		To:       strings.TrimSpace(to),
	}
	switch {
	case req.Quantity == "":
		return req, fmt.Errorf("quantity is empty")
	case req.From == "":
		return req, fmt.Errorf("from is empty")
	case req.To == "":
		return req, fmt.Errorf("to is empty")
	}
	return req, nil
}
