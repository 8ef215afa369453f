package entities

import (
	"image/color"
	"math"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

// ConfettiSpec 单个彩纸粒子的参数
type ConfettiSpec struct {
	OriginX, OriginY float64
	Angle            float64 // 弧度
	Distance         float64 // 像素
	Color            color.RGBA
	Size             float64
	Lifetime         time.Duration
	Animation        string
}

// NewConfettiEntity 创建一个彩纸粒子
// 位移向量在创建时根据角度和距离算出，动画只负责沿该向量插值
func NewConfettiEntity(manager *ecs.EntityManager, spec ConfettiSpec, now time.Duration) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: spec.OriginX, Y: spec.OriginY})

	manager.AddComponent(id, &components.VisualComponent{
		Kind:      components.KindConfetti,
		Color:     spec.Color,
		Width:     spec.Size,
		Height:    spec.Size * 0.6,
		Animation: spec.Animation,
		Opacity:   1,
		Scale:     1,
	})

	manager.AddComponent(id, &components.ConfettiComponent{
		OriginX:    spec.OriginX,
		OriginY:    spec.OriginY,
		Angle:      spec.Angle,
		Distance:   spec.Distance,
		TranslateX: math.Cos(spec.Angle) * spec.Distance,
		TranslateY: math.Sin(spec.Angle) * spec.Distance,
	})

	manager.AddComponent(id, &components.LifetimeComponent{
		SpawnedAt: now,
		Lifetime:  spec.Lifetime,
	})

	return id
}
