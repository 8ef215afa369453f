// Package app 提供效果应用的 Ebiten 包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/effects"
	"github.com/decker502/balloons/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 覆盖内置配置的 YAML 文件，为空则只使用内置配置
	ConfigPath string
	// Watch 监听 ConfigPath 的变化并热加载
	Watch bool
}

// App 是效果应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	manager  *effects.Manager
	renderer *Renderer
	watcher  *config.Watcher

	tracker pointerTracker
	width   int
	height  int
	verbose bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	effectsConfig, err := config.LoadEffectsConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("效果配置加载失败: %w", err)
	}

	manager, err := effects.NewManager(effectsConfig)
	if err != nil {
		return nil, fmt.Errorf("效果管理器创建失败: %w", err)
	}

	renderer, err := NewRenderer(effectsConfig)
	if err != nil {
		return nil, fmt.Errorf("渲染器创建失败: %w", err)
	}

	a := &App{
		manager:  manager,
		renderer: renderer,
		verbose:  cfg.Verbose,
	}

	if cfg.Watch && cfg.ConfigPath != "" {
		watcher, err := config.NewWatcher(cfg.ConfigPath)
		if err != nil {
			// 热加载只是开发便利，失败不影响运行
			log.Printf("[App] Config watch disabled: %v", err)
		} else {
			a.watcher = watcher
			log.Printf("[App] Watching %s", cfg.ConfigPath)
		}
	}

	return a, nil
}

// WindowConfig 返回配置中的窗口参数
func (a *App) WindowConfig() config.WindowConfig {
	return a.manager.Config().Window
}

// Update 更新效果逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.pollConfig()

	// F11 切换全屏（移动端没有窗口）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// 第一次 Layout 之后才知道真实尺寸，这时再触发加载
	if a.width > 0 && !a.manager.Loaded() {
		a.manager.Load()
	}

	input := readInput(&a.tracker)
	if input.Moved {
		a.manager.PointerMove(float64(input.X), float64(input.Y))
	}
	if input.Clicked {
		if utils.IsMobile() {
			// 移动模式模拟：鼠标按下当作单点触摸
			a.manager.TouchStart(1)
		} else {
			a.manager.Click(float64(input.X), float64(input.Y))
		}
	}
	if input.NewTouches > 0 {
		a.manager.TouchStart(input.Touches)
	}

	a.manager.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.manager.EntityManager())
}

// Layout 逻辑尺寸等于窗口尺寸，每次变化都转交给管理器
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.manager.Resize(outsideWidth, outsideHeight)
		a.renderer.LayoutAnchor(a.manager.EntityManager(), outsideWidth)
	}
	return outsideWidth, outsideHeight
}

// pollConfig 检查配置文件变化，解析失败时保留旧配置
func (a *App) pollConfig() {
	if a.watcher == nil {
		return
	}

	select {
	case err := <-a.watcher.Errors:
		log.Printf("[App] Config watcher error: %v", err)
	default:
	}

	path, ok := a.watcher.Poll()
	if !ok {
		return
	}
	next, err := config.LoadEffectsConfig(path)
	if err != nil {
		log.Printf("[App] Config reload failed, keeping previous: %v", err)
		return
	}
	if err := a.manager.ApplyConfig(next); err != nil {
		log.Printf("[App] Config reload failed, keeping previous: %v", err)
		return
	}
	a.renderer.SetConfig(next)
	a.renderer.LayoutAnchor(a.manager.EntityManager(), a.width)
	log.Printf("[App] Reloaded %s", path)
}

// Close 释放文件监听
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
