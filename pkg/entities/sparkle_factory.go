package entities

import (
	"image/color"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

// SparkleSpec 已随机化的闪光参数
type SparkleSpec struct {
	X, Y      float64
	Color     color.RGBA
	Size      float64
	Opacity   float64
	Lifetime  time.Duration
	Animation string
}

// NewSparkleEntity 创建一个闪光实体（小圆点，淡出并向上漂移）
func NewSparkleEntity(manager *ecs.EntityManager, spec SparkleSpec, now time.Duration) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})

	manager.AddComponent(id, &components.VisualComponent{
		Kind:      components.KindSparkle,
		Color:     spec.Color,
		Width:     spec.Size,
		Height:    spec.Size,
		Animation: spec.Animation,
		Opacity:   spec.Opacity,
		Scale:     1,
	})

	manager.AddComponent(id, &components.SparkleComponent{
		OriginX: spec.X,
		OriginY: spec.Y,
		Opacity: spec.Opacity,
	})

	manager.AddComponent(id, &components.LifetimeComponent{
		SpawnedAt: now,
		Lifetime:  spec.Lifetime,
	})

	return id
}
