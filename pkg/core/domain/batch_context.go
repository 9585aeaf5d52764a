package domain

import "context"

// BatchContext 携带批量换算时的上下文信息
type BatchContext struct {
	TraceID  string
	BatchID  string // 批次号，写入被拒绝的请求
	Operator string // 操作人 (SYSTEM 或 具体User)
}

type batchContextKey struct{}

// NewContext returns a new Context that carries the BatchContext value.
func NewContext(ctx context.Context, info BatchContext) context.Context {
	return context.WithValue(ctx, batchContextKey{}, info)
}

// FromContext returns the BatchContext value stored in ctx, if any.
func FromContext(ctx context.Context) (BatchContext, bool) {
	info, ok := ctx.Value(batchContextKey{}).(BatchContext)
	return info, ok
}
