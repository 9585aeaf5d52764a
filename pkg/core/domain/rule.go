package domain

// RuleType 定义请求检查规则类型
type RuleType string

const (
	RuleTypeRange RuleType = "RANGE" // 范围检查 (以基准单位表示的 Min/Max)
)

// RuleAction 定义规则触发后的处理策略
type RuleAction string

const (
	ActionReject  RuleAction = "REJECT"  // 默认：拒绝请求
	ActionCorrect RuleAction = "CORRECT" // 修正：截断到边界并标记为 CORRECTED
)

// CheckRule 批量换算前的请求检查规则配置
// 由 RuleFactory 按 Type 构建为 ports.RequestRule
type CheckRule struct {
	ID         string         `json:"id"`
	UnitOf     Category       `json:"unit_of,omitempty"` // 规则适用的类别，为空表示全部
	Type       RuleType       `json:"type"`
	Action     RuleAction     `json:"action,omitempty"`
	Enabled    bool           `json:"enabled"`
	Parameters map[string]any `json:"parameters,omitempty"` // 规则参数 (例如: {"min": 0})
	Priority   int            `json:"priority,omitempty"`   // 执行优先级，数值大的先执行
}
