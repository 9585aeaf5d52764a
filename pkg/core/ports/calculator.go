package ports

import "github.com/renjie/prism-units/pkg/core/domain"

// Calculator 算术策略接口
// 公式只依赖此接口，不依赖具体数值表示 (float64 / 高精度十进制)
// 精度模式在实例生命周期内固定
type Calculator interface {
	// Name 返回实现名称 (用于日志)
	Name() string

	// FromFloat 将 float64 转换为本实现的数值表示
	FromFloat(f float64) domain.Number
	// Parse 解析十进制字符串；非法或非有限值返回 InvalidArgument
	Parse(s string) (domain.Number, error)

	Add(a, b domain.Number) domain.Number
	Sub(a, b domain.Number) domain.Number
	Mul(a, b domain.Number) domain.Number
	// Div 除数为零时返回 DivisionByZero
	Div(a, b domain.Number) (domain.Number, error)
	// Pow 结果无定义 (如 0^-1, 负数的分数次幂) 时返回算术错误
	Pow(base, exp domain.Number) (domain.Number, error)

	// Round 四舍五入到 places 位小数
	Round(n domain.Number, places int) domain.Number
}
