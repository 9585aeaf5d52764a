package domain

// QualityState 换算结果的质量标记
type QualityState string

const (
	QualityValid     QualityState = "VALID"     // 原样换算
	QualityCorrected QualityState = "CORRECTED" // 输入被检查规则修正后换算
)

// ConversionRequest 一条批量换算请求
// Quantity 保留十进制字符串，避免高精度计算器下的精度丢失
type ConversionRequest struct {
	ID       string   `json:"id,omitempty"`
	Quantity string   `json:"quantity"`
	From     string   `json:"from"`
	UnitOf   Category `json:"unit_of,omitempty"` // 源单位类别，符号有歧义时必填
	To       string   `json:"to"`
}

// ConversionResult 一条成功的换算结果
type ConversionResult struct {
	Request ConversionRequest `json:"request"`
	Value   Number            `json:"-"`
	Quality QualityState      `json:"quality"`
	Note    string            `json:"note,omitempty"` // 修正原因
}

// RejectedRequest 被拒绝的请求 (检查规则未通过或换算失败)
type RejectedRequest struct {
	Request ConversionRequest `json:"request"`
	Reason  string            `json:"reason"`
	Kind    Kind              `json:"kind,omitempty"`    // 换算错误的类别
	RuleID  string            `json:"rule_id,omitempty"` // 触发的规则ID
	BatchID string            `json:"batch_id,omitempty"`
}

// IngestionResult 导入结果统计 (坏记录计数但不中断)
type IngestionResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
