package systems

import (
	"image/color"
	"log"

	"github.com/decker502/balloons/internal/keyframe"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/scheduler"
	"github.com/decker502/balloons/pkg/utils"
)

// FadeOutAnimation 闪光使用的内置淡出动画
// 不透明度 1→0，向上漂移 20 像素，缩小到一半，全部 ease-out
func FadeOutAnimation(name string) *keyframe.Animation {
	return keyframe.MustParseAnimation(name, map[string]string{
		keyframe.PropOpacity: "0,1 1,0 ease-out",
		keyframe.PropY:       "0,0 1,-20 ease-out",
		keyframe.PropScale:   "0,1 1,0.5 ease-out",
	})
}

// SparkleSystem 在指针移动时以低概率生成闪光
// 没有去抖，也没有队列：每个事件独立掷一次骰子
type SparkleSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	lifetime      *LifetimeSystem
	rng           utils.Rand

	config  config.SparkleConfig
	palette []color.RGBA
}

// NewSparkleSystem 创建闪光系统，并向动画注册表注入淡出动画
// 样式配置已经定义了同名动画时保留配置中的定义
func NewSparkleSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, lifetime *LifetimeSystem, animations *keyframe.Registry, cfg *config.EffectsConfig, rng utils.Rand) *SparkleSystem {
	s := &SparkleSystem{
		entityManager: em,
		scheduler:     sched,
		lifetime:      lifetime,
		rng:           rng,
	}
	s.SetConfig(cfg, animations)
	return s
}

// SetConfig 替换闪光参数，并向新的动画注册表注入淡出动画
func (s *SparkleSystem) SetConfig(cfg *config.EffectsConfig, animations *keyframe.Registry) {
	s.config = cfg.Sparkle
	s.palette = cfg.Colors()
	if animations != nil && animations.Inject(FadeOutAnimation(s.config.Animation)) {
		log.Printf("[SparkleSystem] Injected built-in %q animation", s.config.Animation)
	}
}

// OnPointerMove 处理一次指针移动事件
// 以配置的概率在指针附近生成一个闪光，返回是否生成
func (s *SparkleSystem) OnPointerMove(x, y float64) (ecs.EntityID, bool) {
	if !utils.Chance(s.rng, s.config.Probability) {
		return 0, false
	}
	return s.Emit(x, y), true
}

// Emit 无条件在 (x, y) 附近生成一个闪光
func (s *SparkleSystem) Emit(x, y float64) ecs.EntityID {
	spec := entities.SparkleSpec{
		X:         x + utils.RandomSigned(s.rng, s.config.Jitter),
		Y:         y + utils.RandomSigned(s.rng, s.config.Jitter),
		Size:      s.config.Size,
		Opacity:   s.config.Opacity,
		Lifetime:  s.config.Lifetime,
		Animation: s.config.Animation,
	}
	if len(s.palette) > 0 {
		spec.Color = s.palette[s.rng.Intn(len(s.palette))]
	}

	id := entities.NewSparkleEntity(s.entityManager, spec, s.scheduler.Now())
	s.lifetime.Track(id)
	return id
}
