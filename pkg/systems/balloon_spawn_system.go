package systems

import (
	"image/color"
	"log"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/scheduler"
	"github.com/decker502/balloons/pkg/utils"
)

// spawnTimerKey 重复生成计时器的调度键
const spawnTimerKey scheduler.Key = "balloon/spawn"

// BalloonSpawnSystem 管理气球的生成
//
// 生成有三个来源：按分档间隔重复的计时器、加载时的初始批次、点击/触摸连发。
// 所有来源都调用 Spawn，并使用调用那一刻的 ViewportProfile。
type BalloonSpawnSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	lifetime      *LifetimeSystem
	rng           utils.Rand

	config  config.BalloonConfig
	palette []color.RGBA
	profile config.ViewportProfile // 当前视口分档，resize 时整体替换
	running bool                   // 重复计时器是否已启动
}

// NewBalloonSpawnSystem 创建一个新的气球生成系统
// 参数:
//   - em: EntityManager 实例
//   - sched: 调度器，用于移除任务和计时器
//   - lifetime: 生命周期系统，负责登记移除任务
//   - cfg: 效果配置（使用 balloon 段和调色板）
//   - rng: 随机源
func NewBalloonSpawnSystem(em *ecs.EntityManager, sched *scheduler.Scheduler, lifetime *LifetimeSystem, cfg *config.EffectsConfig, rng utils.Rand) *BalloonSpawnSystem {
	return &BalloonSpawnSystem{
		entityManager: em,
		scheduler:     sched,
		lifetime:      lifetime,
		rng:           rng,
		config:        cfg.Balloon,
		palette:       cfg.Colors(),
	}
}

// SetConfig 替换生成参数（配置热加载）
// 已存在的气球保持原有参数
func (s *BalloonSpawnSystem) SetConfig(cfg *config.EffectsConfig) {
	s.config = cfg.Balloon
	s.palette = cfg.Colors()
}

// SetProfile 替换当前视口分档
// 只影响之后的生成；已登记的计时器和移除任务不变
func (s *BalloonSpawnSystem) SetProfile(vp config.ViewportProfile) {
	s.profile = vp
}

// Profile 返回当前视口分档
func (s *BalloonSpawnSystem) Profile() config.ViewportProfile {
	return s.profile
}

// ActiveCount 返回当前存活的气球数量
func (s *BalloonSpawnSystem) ActiveCount() int {
	return ecs.CountWith[*components.BalloonComponent](s.entityManager)
}

// Spawn 按视口分档 vp 生成一个气球
// 存活气球数量已达容量上限时不做任何事，返回 false
func (s *BalloonSpawnSystem) Spawn(vp config.ViewportProfile) (ecs.EntityID, bool) {
	if s.ActiveCount() >= vp.Capacity {
		return 0, false
	}
	if len(s.palette) == 0 {
		return 0, false
	}

	spec := entities.BalloonSpec{
		LeftPercent:  s.randomLeft(vp),
		Color:        s.palette[s.rng.Intn(len(s.palette))],
		RiseDuration: s.randomDuration(s.config.RiseDuration),
		SwayPeriod:   s.randomDuration(s.config.SwayPeriod),
		Rotation:     utils.RandomSigned(s.rng, s.config.MaxRotation),
		Width:        s.config.Width,
		Height:       s.config.Height,
		RiseAnim:     s.config.RiseAnimation,
		SwayAnim:     s.config.SwayAnimation,
	}

	id := entities.NewBalloonEntity(s.entityManager, spec, s.scheduler.Now())
	s.lifetime.Track(id)

	log.Printf("[BalloonSpawnSystem] Spawned balloon %d at %.1f%% (rise=%v, tier=%s, active=%d/%d)",
		id, spec.LeftPercent, spec.RiseDuration, vp.Tier, s.ActiveCount(), vp.Capacity)
	return id, true
}

// randomLeft 随机水平位置（百分比）
// 窄档在左右两个区间中等概率选一个，避开中央的文字
func (s *BalloonSpawnSystem) randomLeft(vp config.ViewportProfile) float64 {
	band := s.config.Band
	if vp.Narrow() && len(s.config.NarrowBands) > 0 {
		band = s.config.NarrowBands[s.rng.Intn(len(s.config.NarrowBands))]
	}
	return utils.RandomInRange(s.rng, band.Min, band.Max)
}

func (s *BalloonSpawnSystem) randomDuration(r config.DurationRange) time.Duration {
	return time.Duration(utils.RandomInRange(s.rng, float64(r.Min), float64(r.Max)))
}

// Start 启动重复生成计时器
// 每次触发后按当时的分档间隔重新登记，所以 resize 之后的下一次间隔才会改变
func (s *BalloonSpawnSystem) Start() {
	if s.running {
		return
	}
	s.running = true
	s.armTimer()
	log.Printf("[BalloonSpawnSystem] Timer started, interval=%v", s.profile.SpawnInterval)
}

// Stop 停止重复生成计时器
func (s *BalloonSpawnSystem) Stop() {
	s.running = false
	s.scheduler.Cancel(spawnTimerKey)
}

// Running 返回重复计时器是否在运行
func (s *BalloonSpawnSystem) Running() bool {
	return s.running
}

func (s *BalloonSpawnSystem) armTimer() {
	s.scheduler.Schedule(spawnTimerKey, s.profile.SpawnInterval, func() {
		if !s.running {
			return
		}
		s.Spawn(s.profile)
		s.armTimer()
	})
}

// InitialBurst 加载时的初始批次
// 第 i 个气球在 i*间隔/divisor 时生成；返回登记的生成次数
func (s *BalloonSpawnSystem) InitialBurst() int {
	count := s.profile.InitialBurstCount()
	divisor := s.config.InitialBurstDivisor
	if divisor <= 0 {
		divisor = 1
	}
	stagger := s.profile.SpawnInterval / time.Duration(divisor)

	s.stagger(count, stagger)
	log.Printf("[BalloonSpawnSystem] Initial burst: %d balloons, stagger=%v", count, stagger)
	return count
}

// Burst 点击或触摸触发的连发
func (s *BalloonSpawnSystem) Burst() int {
	s.stagger(s.config.ClickBurst.Count, s.config.ClickBurst.Stagger)
	return s.config.ClickBurst.Count
}

// stagger 登记 count 次间隔为 step 的生成
// 第一次的延迟为 0，在下一次 Advance 时执行
func (s *BalloonSpawnSystem) stagger(count int, step time.Duration) {
	for i := 0; i < count; i++ {
		s.scheduler.After(time.Duration(i)*step, func() {
			s.Spawn(s.profile)
		})
	}
}
