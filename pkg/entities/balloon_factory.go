package entities

import (
	"image/color"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

// BalloonSpec 已随机化的气球参数
type BalloonSpec struct {
	LeftPercent  float64
	Color        color.RGBA
	RiseDuration time.Duration
	SwayPeriod   time.Duration
	Rotation     float64
	Width        float64
	Height       float64
	RiseAnim     string
	SwayAnim     string
}

// NewBalloonEntity 创建一个气球实体
// 参数:
//   - manager: EntityManager 实例
//   - spec: 气球参数
//   - now: 当前调度器时间，作为动画起点
//
// 返回: 创建的实体ID
func NewBalloonEntity(manager *ecs.EntityManager, spec BalloonSpec, now time.Duration) ecs.EntityID {
	id := manager.CreateEntity()

	// 位置由 AnimationSystem 每帧计算，这里只放占位值
	manager.AddComponent(id, &components.PositionComponent{})

	manager.AddComponent(id, &components.VisualComponent{
		Kind:      components.KindBalloon,
		Color:     spec.Color,
		Width:     spec.Width,
		Height:    spec.Height,
		Animation: spec.RiseAnim,
		Opacity:   1,
		Scale:     1,
		Rotation:  spec.Rotation,
	})

	manager.AddComponent(id, &components.BalloonComponent{
		LeftPercent:  spec.LeftPercent,
		RiseDuration: spec.RiseDuration,
		SwayPeriod:   spec.SwayPeriod,
		Rotation:     spec.Rotation,
		SwayAnim:     spec.SwayAnim,
	})

	// 生命周期等于上升动画时长
	manager.AddComponent(id, &components.LifetimeComponent{
		SpawnedAt: now,
		Lifetime:  spec.RiseDuration,
	})

	return id
}
