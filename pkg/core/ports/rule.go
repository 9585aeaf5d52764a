package ports

import "github.com/renjie/prism-units/pkg/core/domain"

// CheckContext 检查规则执行时的上下文信息
type CheckContext struct {
	Request domain.ConversionRequest
	Source  *domain.Unit // 已解析的源单位
	Calc    Calculator
	// ToBase / FromBase 在源单位与其类别基准单位之间换算
	ToBase   func(quantity domain.Number) (domain.Number, error)
	FromBase func(quantity domain.Number) (domain.Number, error)
}

// CheckResult 检查规则的结果
type CheckResult struct {
	Quantity  domain.Number // 结果数量 (可能是原值或修正后的值)
	Passed    bool          // 是否通过检查
	Corrected bool          // 是否进行了修正
	Reason    string        // 失败或修正的原因描述
	RuleID    string        // 给出该结果的规则
}

// RequestRule 请求检查规则接口
// 这是一个策略接口，具体的业务规则（如范围检查、绝对零度）由外部实现注入
type RequestRule interface {
	Check(ctx CheckContext, quantity domain.Number) CheckResult
}

// Sanitizer 协调多个检查规则的执行
type Sanitizer interface {
	// Sanitize 依次执行规则；修正后的数量传递给下一条规则
	// 第一条未通过的规则终止检查
	Sanitize(ctx CheckContext, quantity domain.Number) CheckResult
}
