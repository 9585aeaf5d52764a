package ports

import (
	"context"
	"io"

	"github.com/renjie/prism-units/pkg/core/domain"
)

// RequestIngestor 批量换算请求的导入接口
// 解码后的请求按批次交给 downstream，坏记录计入 IngestionResult
type RequestIngestor interface {
	IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestionResult, error)
	IngestBatch(ctx context.Context, file io.Reader, format string) (*domain.IngestionResult, error)
}
