package systems

import (
	"math"
	"time"

	"github.com/decker502/balloons/internal/keyframe"
	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/scheduler"
	"github.com/decker502/balloons/pkg/utils"
)

// AnimationSystem 根据关键帧动画计算每个实体当前的位置和外观
//
// 它只读取注册表中的动画曲线和组件里的数值参数，
// 结果写回 PositionComponent 和 VisualComponent 供渲染适配器读取。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	animations    *keyframe.Registry
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, animations *keyframe.Registry) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		scheduler:     sched,
		animations:    animations,
	}
}

// SetAnimations 替换动画注册表（配置热加载）
func (s *AnimationSystem) SetAnimations(animations *keyframe.Registry) {
	s.animations = animations
}

// Progress 返回生命周期进度 0-1
func Progress(lifetime *components.LifetimeComponent, now time.Duration) float64 {
	if lifetime.Lifetime <= 0 {
		return 1
	}
	return utils.Clamp01(float64(now-lifetime.SpawnedAt) / float64(lifetime.Lifetime))
}

// Update 更新所有视觉实体
// vp 提供视口尺寸，气球的位置以视口百分比定义
func (s *AnimationSystem) Update(vp config.ViewportProfile) {
	now := s.scheduler.Now()
	entities := ecs.GetEntitiesWith3[
		*components.VisualComponent,
		*components.PositionComponent,
		*components.LifetimeComponent,
	](s.entityManager)

	for _, id := range entities {
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		t := Progress(lifetime, now)
		anim, _ := s.animations.Get(visual.Animation)

		switch visual.Kind {
		case components.KindBalloon:
			if balloon, ok := ecs.GetComponent[*components.BalloonComponent](s.entityManager, id); ok {
				s.updateBalloon(pos, visual, balloon, anim, t, now-lifetime.SpawnedAt, vp)
			}
		case components.KindSparkle:
			if sparkle, ok := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id); ok {
				updateSparkle(pos, visual, sparkle, anim, t)
			}
		case components.KindConfetti:
			if confetti, ok := ecs.GetComponent[*components.ConfettiComponent](s.entityManager, id); ok {
				updateConfetti(pos, visual, confetti, anim, t)
			}
		}
	}
}

// updateBalloon 气球：上升动画决定纵向位置，摇摆动画循环叠加水平偏移和旋转
// 位置是气球球体的左上角
func (s *AnimationSystem) updateBalloon(pos *components.PositionComponent, visual *components.VisualComponent, balloon *components.BalloonComponent, rise *keyframe.Animation, t float64, elapsed time.Duration, vp config.ViewportProfile) {
	swayT := 0.0
	if balloon.SwayPeriod > 0 {
		swayT = math.Mod(float64(elapsed), float64(balloon.SwayPeriod)) / float64(balloon.SwayPeriod)
	}
	sway, _ := s.animations.Get(balloon.SwayAnim)

	width := float64(vp.Width)
	height := float64(vp.Height)

	pos.X = balloon.LeftPercent/100*width + sway.Value(keyframe.PropX, swayT, 0)
	pos.Y = rise.Value(keyframe.PropY, t, 1-t) * height
	visual.Rotation = balloon.Rotation + sway.Value(keyframe.PropRotate, swayT, 0)
	visual.Opacity = rise.Value(keyframe.PropOpacity, t, 1)
	visual.Scale = rise.Value(keyframe.PropScale, t, 1)
}

// updateSparkle 闪光：以原点为基准偏移，不透明度乘以初始不透明度
func updateSparkle(pos *components.PositionComponent, visual *components.VisualComponent, sparkle *components.SparkleComponent, anim *keyframe.Animation, t float64) {
	pos.X = sparkle.OriginX + anim.Value(keyframe.PropX, t, 0)
	pos.Y = sparkle.OriginY + anim.Value(keyframe.PropY, t, 0)
	visual.Opacity = sparkle.Opacity * anim.Value(keyframe.PropOpacity, t, 1-t)
	visual.Scale = anim.Value(keyframe.PropScale, t, 1)
	visual.Rotation = anim.Value(keyframe.PropRotate, t, 0)
}

// updateConfetti 彩纸：沿创建时确定的位移向量按 progress 轨道移动
func updateConfetti(pos *components.PositionComponent, visual *components.VisualComponent, confetti *components.ConfettiComponent, anim *keyframe.Animation, t float64) {
	progress := anim.Value(keyframe.PropProgress, t, t)
	pos.X = confetti.OriginX + confetti.TranslateX*progress
	pos.Y = confetti.OriginY + confetti.TranslateY*progress
	visual.Opacity = anim.Value(keyframe.PropOpacity, t, 1-t)
	visual.Scale = anim.Value(keyframe.PropScale, t, 1)
	visual.Rotation = anim.Value(keyframe.PropRotate, t, 0)
}
