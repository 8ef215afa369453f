package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/balloons/pkg/app"
	"github.com/decker502/balloons/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "YAML file overriding the built-in effects config")
	watchFlag   = flag.Bool("watch", false, "Reload the -config file when it changes")
	widthFlag   = flag.Int("width", 0, "Initial window width (default from config)")
	heightFlag  = flag.Int("height", 0, "Initial window height (default from config)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Watch:      *watchFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	window := gameApp.WindowConfig()
	width, height := window.Width, window.Height
	if *widthFlag > 0 {
		width = *widthFlag
	}
	if *heightFlag > 0 {
		height = *heightFlag
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
