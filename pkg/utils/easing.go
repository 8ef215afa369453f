package utils

import (
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（彩纸向外飞散）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutSine 正弦缓入缓出
// 特点：两端平缓，用于气球左右摇摆这类往复动画
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EasingByName 按名称查找缓动函数
//
// 同时接受 CSS 风格（"ease-out"）和驼峰风格（"EaseOut"）的名称，
// 未知名称返回线性缓动。
func EasingByName(name string) EasingFunc {
	key := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	switch key {
	case "easein":
		return EaseInQuad
	case "easeout":
		return EaseOutQuad
	case "easeinout", "fastinoutweak":
		return EaseInOutSine
	case "easeincubic":
		return EaseInCubic
	case "easeoutcubic":
		return EaseOutCubic
	case "easeinoutcubic":
		return EaseInOutCubic
	default:
		return EaseLinear
	}
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
