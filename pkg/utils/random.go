package utils

import "math/rand"

// Rand 是生成系统需要的随机源接口
// *rand.Rand 满足该接口，测试中可以传入固定种子的实例
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand 创建带种子的随机源
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomInRange 返回 [min, max) 内的均匀随机数
// min >= max 时返回 min
func RandomInRange(r Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// RandomSigned 返回 [-amplitude, amplitude) 内的均匀随机数
func RandomSigned(r Rand, amplitude float64) float64 {
	return (r.Float64() - 0.5) * 2 * amplitude
}

// Chance 以概率 p 返回 true
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}
