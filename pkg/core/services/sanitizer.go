package services

import (
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
)

// ChainSanitizer 基于责任链模式的检查器实现
type ChainSanitizer struct {
	rules []ports.RequestRule
}

// NewSanitizer 创建默认的基于规则链的检查器
func NewSanitizer(rules ...ports.RequestRule) ports.Sanitizer {
	return &ChainSanitizer{rules: rules}
}

// Sanitize 实现 ports.Sanitizer 接口
func (s *ChainSanitizer) Sanitize(ctx ports.CheckContext, quantity domain.Number) ports.CheckResult {
	result := ports.CheckResult{Quantity: quantity, Passed: true}

	// 每条规则拿到上一条规则可能修正过的数量 (Pipe and Filter)
	for _, rule := range s.rules {
		r := rule.Check(ctx, result.Quantity)
		if !r.Passed {
			return r
		}
		if r.Corrected {
			result.Corrected = true
			result.Reason = r.Reason
			result.RuleID = r.RuleID
		}
		result.Quantity = r.Quantity
	}
	return result
}
