package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// BatchConverter 批量换算服务
// 职责: 请求检查 (规则链) + 有界并发换算 + 拒绝记录
type BatchConverter struct {
	conv             *UnitConverter
	sanitizer        ports.Sanitizer
	concurrencyLimit int // 并发限制
	logger           *slog.Logger
}

// BatchOption 定义配置选项函数 (Functional Option Pattern)
type BatchOption func(*BatchConverter)

// WithRequestRules 设置检查规则 (按参数顺序执行)
func WithRequestRules(rules ...ports.RequestRule) BatchOption {
	return func(b *BatchConverter) {
		b.sanitizer = NewSanitizer(rules...)
	}
}

// WithConcurrencyLimit 设置最大并发数 (默认 100)
func WithConcurrencyLimit(limit int) BatchOption {
	return func(b *BatchConverter) {
		if limit > 0 {
			b.concurrencyLimit = limit
		}
	}
}

// WithBatchLogger 设置日志 (默认与换算服务相同)
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchConverter) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchConverter 初始化批量换算服务
func NewBatchConverter(conv *UnitConverter, opts ...BatchOption) *BatchConverter {
	if conv == nil {
		conv = NewUnitConverter(nil, nil)
	}
	b := &BatchConverter{
		conv:             conv,
		sanitizer:        NewSanitizer(), // 默认无规则
		concurrencyLimit: 100,
		logger:           conv.logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ConvertAll 换算一批请求
// 单条请求失败不会中断批次，而是进入拒绝列表；结果与拒绝列表都保持输入顺序
// ctx 被取消时丢弃全部结果并返回 ctx.Err()
func (b *BatchConverter) ConvertAll(ctx context.Context, requests []domain.ConversionRequest) ([]domain.ConversionResult, []domain.RejectedRequest, error) {
	type outcome struct {
		result   *domain.ConversionResult
		rejected *domain.RejectedRequest
	}
	outcomes := make([]outcome, len(requests))

	var wg sync.WaitGroup
	// Semaphore for bounded concurrency
	sem := make(chan struct{}, b.concurrencyLimit)

dispatch:
	for i := range requests {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}: // Acquire token
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // Release token

			res, rej := b.convertOne(requests[i])
			outcomes[i] = outcome{result: res, rejected: rej}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	info, _ := domain.FromContext(ctx)
	var results []domain.ConversionResult
	var rejected []domain.RejectedRequest
	for _, o := range outcomes {
		if o.rejected != nil {
			o.rejected.BatchID = info.BatchID
			rejected = append(rejected, *o.rejected)
			continue
		}
		results = append(results, *o.result)
	}

	b.logger.Info("batch conversion finished",
		"trace_id", info.TraceID,
		"batch_id", info.BatchID,
		"operator", info.Operator,
		"total", len(requests),
		"converted", len(results),
		"rejected", len(rejected))
	return results, rejected, nil
}

func (b *BatchConverter) convertOne(req domain.ConversionRequest) (*domain.ConversionResult, *domain.RejectedRequest) {
	c := b.conv

	// 1. 解析数量、源单位、目标单位
	quantity, err := c.calculator.Parse(req.Quantity)
	if err != nil {
		return nil, rejection(req, err)
	}
	source, err := c.registry.GetUnitOfMeasureFor(req.From, req.UnitOf)
	if err != nil {
		return nil, rejection(req, err)
	}
	target, err := c.resolveTarget(source, req.To)
	if err != nil {
		return nil, rejection(req, err)
	}

	// 2. 规则检查 (可能修正数量)
	check := b.sanitizer.Sanitize(b.checkContext(req, source), quantity)
	if !check.Passed {
		return nil, &domain.RejectedRequest{Request: req, Reason: check.Reason, RuleID: check.RuleID}
	}

	// 3. 换算
	value, err := c.apply(check.Quantity, source, target)
	if err != nil {
		return nil, rejection(req, err)
	}

	res := &domain.ConversionResult{Request: req, Value: value, Quality: domain.QualityValid}
	if check.Corrected {
		res.Quality = domain.QualityCorrected
		res.Note = check.Reason
	}
	return res, nil
}

func (b *BatchConverter) checkContext(req domain.ConversionRequest, source *domain.Unit) ports.CheckContext {
	c := b.conv
	base := func() (*domain.Unit, error) {
		u, err := c.registry.BaseOf(source)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.NewError(domain.KindBadUnit, "%s has no base unit", source)
		}
		return u, nil
	}

	return ports.CheckContext{
		Request: req,
		Source:  source,
		Calc:    c.calculator,
		ToBase: func(q domain.Number) (domain.Number, error) {
			u, err := base()
			if err != nil {
				return nil, err
			}
			v, _, err := c.exact(q, source, u)
			return v, err
		},
		FromBase: func(q domain.Number) (domain.Number, error) {
			u, err := base()
			if err != nil {
				return nil, err
			}
			v, _, err := c.exact(q, u, source)
			return v, err
		},
	}
}

func rejection(req domain.ConversionRequest, err error) *domain.RejectedRequest {
	return &domain.RejectedRequest{Request: req, Reason: err.Error(), Kind: domain.KindOf(err)}
}
