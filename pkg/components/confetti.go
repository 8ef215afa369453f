package components

// ConfettiComponent 彩纸粒子的径向飞行参数
type ConfettiComponent struct {
	OriginX    float64 // 爆发中心
	OriginY    float64
	Angle      float64 // 飞行方向（弧度）
	Distance   float64 // 飞行距离（像素）
	TranslateX float64 // 位移向量 = (cos, sin) * Distance
	TranslateY float64
}
