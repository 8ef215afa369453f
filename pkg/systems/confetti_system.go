package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/scheduler"
	"github.com/decker502/balloons/pkg/utils"
)

// ConfettiSystem 以锚点文字为中心放射彩纸
type ConfettiSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	lifetime      *LifetimeSystem
	rng           utils.Rand

	config  config.ConfettiConfig
	palette []color.RGBA
}

// NewConfettiSystem 创建彩纸系统
func NewConfettiSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, lifetime *LifetimeSystem, cfg *config.EffectsConfig, rng utils.Rand) *ConfettiSystem {
	return &ConfettiSystem{
		entityManager: em,
		scheduler:     sched,
		lifetime:      lifetime,
		rng:           rng,
		config:        cfg.Confetti,
		palette:       cfg.Colors(),
	}
}

// SetConfig 替换彩纸参数
func (s *ConfettiSystem) SetConfig(cfg *config.EffectsConfig) {
	s.config = cfg.Confetti
	s.palette = cfg.Colors()
}

// Burst 从锚点包围盒中心放射一圈彩纸，返回生成数量
//
// 第 i 个粒子的方向角为 2π·i/count，飞行距离在配置区间内均匀随机。
// 没有锚点时直接返回 0。
func (s *ConfettiSystem) Burst() int {
	_, anchor, ok := entities.FindAnchor(s.entityManager)
	if !ok {
		log.Printf("[ConfettiSystem] No anchor, skipping burst")
		return 0
	}
	if len(s.palette) == 0 {
		return 0
	}

	count := s.config.Count
	now := s.scheduler.Now()
	for i := 0; i < count; i++ {
		spec := entities.ConfettiSpec{
			OriginX:   anchor.CenterX,
			OriginY:   anchor.CenterY,
			Angle:     2 * math.Pi * float64(i) / float64(count),
			Distance:  utils.RandomInRange(s.rng, s.config.Distance.Min, s.config.Distance.Max),
			Color:     s.palette[s.rng.Intn(len(s.palette))],
			Size:      s.config.Size,
			Lifetime:  s.config.Lifetime,
			Animation: s.config.Animation,
		}
		id := entities.NewConfettiEntity(s.entityManager, spec, now)
		s.lifetime.Track(id)
	}

	log.Printf("[ConfettiSystem] Burst %d particles at (%.0f, %.0f)", count, anchor.CenterX, anchor.CenterY)
	return count
}
