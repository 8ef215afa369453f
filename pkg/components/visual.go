package components

import "image/color"

// EntityKind 视觉实体类型
type EntityKind int

const (
	KindBalloon  EntityKind = iota // 漂浮气球
	KindSparkle                    // 指针闪光
	KindConfetti                   // 彩纸粒子
)

// String 返回类型名称，用于日志
func (k EntityKind) String() string {
	switch k {
	case KindBalloon:
		return "balloon"
	case KindSparkle:
		return "sparkle"
	case KindConfetti:
		return "confetti"
	default:
		return "unknown"
	}
}

// VisualComponent 渲染适配器需要的全部外观数据
//
// Kind、Color、Width、Height、Animation 在创建时确定；
// Opacity、Scale、Rotation 由 AnimationSystem 每帧写入。
type VisualComponent struct {
	Kind      EntityKind
	Color     color.RGBA
	Width     float64 // 基础宽度（像素）
	Height    float64 // 基础高度（像素）
	Animation string  // 主动画名称（样式层定义的关键帧）

	Opacity  float64 // 当前不透明度 0-1
	Scale    float64 // 当前缩放倍数
	Rotation float64 // 当前旋转角度（度）
}
