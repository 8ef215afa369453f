package components

// SparkleComponent 指针闪光
type SparkleComponent struct {
	OriginX float64 // 生成位置（已叠加随机偏移）
	OriginY float64
	Opacity float64 // 初始不透明度，动画的 opacity 轨道在此基础上相乘
}
