// validate_config 检查效果配置文件
//
// 用法（在项目根目录运行）：
//
//	go run ./cmd/validate_config [-widths 320,600,1024] [config.yaml]
//
// 不带参数时检查内置配置；带文件时检查覆盖后的完整配置。
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/embedded"
	"github.com/decker502/balloons/pkg/systems"
)

var widthsFlag = flag.String("widths", "320,480,481,768,769,1920", "逗号分隔的视口宽度，用于打印分档结果")

func main() {
	flag.Parse()
	embedded.Init(os.DirFS("."))

	path := flag.Arg(0)
	cfg, err := config.LoadEffectsConfig(path)
	if err != nil {
		fmt.Printf("❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if path == "" {
		path = config.DefaultConfigPath
	}
	fmt.Printf("✅ %s 格式正确\n", path)

	animations, err := cfg.BuildAnimations()
	if err != nil {
		fmt.Printf("❌ 动画解析失败: %v\n", err)
		os.Exit(1)
	}
	if animations.Inject(systems.FadeOutAnimation(cfg.Sparkle.Animation)) {
		fmt.Printf("ℹ️  %s 未在配置中定义，运行时使用内置版本\n", cfg.Sparkle.Animation)
	}

	missing := 0
	for _, name := range []string{cfg.Balloon.RiseAnimation, cfg.Balloon.SwayAnimation, cfg.Sparkle.Animation, cfg.Confetti.Animation} {
		if _, ok := animations.Get(name); !ok {
			fmt.Printf("❌ 引用的动画 %q 不存在\n", name)
			missing++
		}
	}
	if missing > 0 {
		os.Exit(1)
	}
	fmt.Printf("✅ 动画: %s\n", strings.Join(animations.Names(), ", "))

	for _, field := range strings.Split(*widthsFlag, ",") {
		width, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			fmt.Printf("❌ 无效宽度 %q\n", field)
			os.Exit(1)
		}
		p := cfg.Viewport.ResolveViewport(width, cfg.Window.Height)
		fmt.Printf("   %5dpx -> %-6s 容量=%-2d 间隔=%v 初始批次=%d\n",
			width, p.Tier, p.Capacity, p.SpawnInterval, p.InitialBurstCount())
	}
}
