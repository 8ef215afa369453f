package components

// PositionComponent 实体当前帧的屏幕坐标（像素）
// 由 AnimationSystem 每帧根据动画参数重新计算
type PositionComponent struct {
	X float64
	Y float64
}
