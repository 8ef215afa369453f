package components

import "time"

// BalloonComponent 气球的随机化动画参数
type BalloonComponent struct {
	LeftPercent  float64       // 水平位置，视口宽度的百分比
	RiseDuration time.Duration // 上升动画时长，同时也是生命周期
	SwayPeriod   time.Duration // 摇摆动画周期，循环到移除为止
	Rotation     float64       // 静态旋转偏移（度）
	SwayAnim     string        // 摇摆动画名称
}
