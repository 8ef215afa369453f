// Package effects 把气球、闪光、彩纸三种效果组装成一个可驱动的管理器
//
// Manager 不依赖任何渲染后端：窗口或终端适配器把尺寸变化、指针事件和帧时间
// 转交给它，再从 EntityManager 读取实体进行绘制。所有方法都必须在同一个
// goroutine（渲染循环）中调用。
package effects

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/balloons/internal/keyframe"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/scheduler"
	"github.com/decker502/balloons/pkg/systems"
	"github.com/decker502/balloons/pkg/utils"
)

// Manager 临时视觉实体管理器
type Manager struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	config        *config.EffectsConfig
	animations    *keyframe.Registry
	rng           utils.Rand

	lifetimeSystem  *systems.LifetimeSystem
	spawnSystem     *systems.BalloonSpawnSystem
	sparkleSystem   *systems.SparkleSystem
	confettiSystem  *systems.ConfettiSystem
	animationSystem *systems.AnimationSystem

	profile config.ViewportProfile
	loaded  bool
}

// Option 配置 Manager 的可选参数
type Option func(*Manager)

// WithRand 使用指定的随机源（测试中传入固定种子）
func WithRand(rng utils.Rand) Option {
	return func(m *Manager) {
		m.rng = rng
	}
}

// NewManager 根据配置创建管理器
// 初始视口取配置中的窗口尺寸，适配器应在第一帧前调用 Resize
func NewManager(cfg *config.EffectsConfig, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("effects config is nil")
	}
	animations, err := cfg.BuildAnimations()
	if err != nil {
		return nil, fmt.Errorf("failed to build animations: %w", err)
	}

	m := &Manager{
		entityManager: ecs.NewEntityManager(),
		scheduler:     scheduler.New(),
		config:        cfg,
		animations:    animations,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = utils.NewRand(time.Now().UnixNano())
	}

	m.lifetimeSystem = systems.NewLifetimeSystem(m.entityManager, m.scheduler)
	m.spawnSystem = systems.NewBalloonSpawnSystem(m.entityManager, m.scheduler, m.lifetimeSystem, cfg, m.rng)
	m.sparkleSystem = systems.NewSparkleSystem(m.entityManager, m.scheduler, m.lifetimeSystem, animations, cfg, m.rng)
	m.confettiSystem = systems.NewConfettiSystem(m.entityManager, m.scheduler, m.lifetimeSystem, cfg, m.rng)
	m.animationSystem = systems.NewAnimationSystem(m.entityManager, m.scheduler, animations)

	m.syncAnchor()
	m.Resize(cfg.Window.Width, cfg.Window.Height)

	log.Printf("[Manager] Created with animations %v", animations.Names())
	return m, nil
}

// EntityManager 返回实体注册表，渲染适配器从这里读取实体
func (m *Manager) EntityManager() *ecs.EntityManager {
	return m.entityManager
}

// Config 返回当前生效的配置
func (m *Manager) Config() *config.EffectsConfig {
	return m.config
}

// Animations 返回当前的动画注册表
func (m *Manager) Animations() *keyframe.Registry {
	return m.animations
}

// Profile 返回当前视口分档
func (m *Manager) Profile() config.ViewportProfile {
	return m.profile
}

// Now 返回调度器时间
func (m *Manager) Now() time.Duration {
	return m.scheduler.Now()
}

// Loaded 返回 Load 是否已执行
func (m *Manager) Loaded() bool {
	return m.loaded
}

// Resize 视口尺寸变化
// 重新解析分档并整体替换；已存在的实体和已登记的任务不受影响
func (m *Manager) Resize(width, height int) {
	next := m.config.Viewport.ResolveViewport(width, height)
	if next.Tier != m.profile.Tier {
		log.Printf("[Manager] Viewport %dx%d -> tier %s (capacity=%d, interval=%v)",
			width, height, next.Tier, next.Capacity, next.SpawnInterval)
	}
	m.profile = next
	m.spawnSystem.SetProfile(next)
	m.layoutAnchor()
}

// Load 页面加载：启动重复生成、登记初始批次、放射一次彩纸
// 只有第一次调用生效
func (m *Manager) Load() {
	if m.loaded {
		return
	}
	m.loaded = true

	m.spawnSystem.Start()
	m.spawnSystem.InitialBurst()
	m.confettiSystem.Burst()
}

// PointerMove 指针移动，可能生成一个闪光
func (m *Manager) PointerMove(x, y float64) {
	m.sparkleSystem.OnPointerMove(x, y)
}

// Click 鼠标点击，触发一次气球连发
func (m *Manager) Click(x, y float64) {
	m.spawnSystem.Burst()
}

// TouchStart 触摸开始，touches 为当前触点数量
// 至少有一个触点时触发一次气球连发
func (m *Manager) TouchStart(touches int) {
	if touches <= 0 {
		return
	}
	m.spawnSystem.Burst()
}

// Update 推进 dt：执行到期任务、清理过期实体、计算动画
func (m *Manager) Update(dt time.Duration) {
	m.scheduler.Advance(dt)
	m.lifetimeSystem.Update()
	m.animationSystem.Update(m.profile)
}

// ApplyConfig 热加载新配置
//
// 动画注册表重建后重新注入 fadeOut；分档按当前尺寸重新解析。
// 已存在的实体保留创建时的参数，失败时保持旧配置不变。
func (m *Manager) ApplyConfig(cfg *config.EffectsConfig) error {
	if cfg == nil {
		return fmt.Errorf("effects config is nil")
	}
	animations, err := cfg.BuildAnimations()
	if err != nil {
		return fmt.Errorf("failed to build animations: %w", err)
	}

	m.config = cfg
	m.animations = animations
	m.spawnSystem.SetConfig(cfg)
	m.sparkleSystem.SetConfig(cfg, animations)
	m.confettiSystem.SetConfig(cfg)
	m.animationSystem.SetAnimations(animations)

	m.syncAnchor()
	m.Resize(m.profile.Width, m.profile.Height)

	log.Printf("[Manager] Config applied, tier=%s", m.profile.Tier)
	return nil
}

// syncAnchor 按配置创建、更新或删除锚点实体
// 文字为空表示没有锚点，彩纸爆发随之变成空操作
func (m *Manager) syncAnchor() {
	id, anchor, ok := entities.FindAnchor(m.entityManager)
	text := m.config.Anchor.Text

	switch {
	case text == "" && ok:
		m.entityManager.DestroyEntity(id)
		m.entityManager.RemoveMarkedEntities()
	case text != "" && !ok:
		entities.NewAnchorEntity(m.entityManager, text, m.config.Anchor.FontSize, 0, 0)
	case text != "" && ok && (anchor.Text != text || anchor.FontSize != m.config.Anchor.FontSize):
		m.entityManager.DestroyEntity(id)
		m.entityManager.RemoveMarkedEntities()
		entities.NewAnchorEntity(m.entityManager, text, m.config.Anchor.FontSize, 0, 0)
	}
}

// layoutAnchor 把锚点放到视口水平居中、配置的纵向比例处
func (m *Manager) layoutAnchor() {
	if _, anchor, ok := entities.FindAnchor(m.entityManager); ok {
		anchor.CenterX = float64(m.profile.Width) / 2
		anchor.CenterY = float64(m.profile.Height) * m.config.Anchor.CenterY
	}
}
