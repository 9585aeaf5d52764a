package domain

// Number 与具体数值表示无关的数值
// 由 Calculator 产生和消费；float64 与高精度十进制实现可以互换
type Number interface {
	// Float64 返回最接近的 float64 值 (高精度实现可能有损)
	Float64() float64
	// String 返回无损的十进制表示，用于跨实现转换
	String() string
}
